package dto

// UpdateProfileRequest carries the profile-edit form. Empty strings
// mean "keep the previous value"; a nil Image means no file was
// submitted.
type UpdateProfileRequest struct {
	FullName   string `form:"full_name"`
	Age        string `form:"age"`
	Profession string `form:"profession"`
	Gender     string `form:"gender"`

	Image *FileUpload `form:"-"`
}

type FileUpload struct {
	Filename string
	Bytes    []byte
}
