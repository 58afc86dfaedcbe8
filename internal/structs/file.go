package structs

type UploadedImage struct {
	FileName string `json:"file_name"`
	Url      string `json:"url"`
}
