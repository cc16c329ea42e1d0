package domain

type Video struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
}
