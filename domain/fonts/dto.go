package fonts

// GenerateFontResponse echoes the upload. FontURL and FontName stay nil until
// font synthesis exists.
type GenerateFontResponse struct {
	FileName string  `json:"fileName"`
	FileSize int64   `json:"fileSize"`
	FontURL  *string `json:"fontUrl"`
	FontName *string `json:"fontName"`
}
