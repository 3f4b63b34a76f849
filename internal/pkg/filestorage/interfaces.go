package filestorage

import "mime/multipart"

// Upload directories, relative to the storage root.
const (
	DirProfileImages   = "profile_images"
	DirActivityFiles   = "mentorship_files"
	DirReferralResumes = "resumes"
)

// FileStorage stores uploaded files and returns the public URL they are served from.
type FileStorage interface {
	// Save stores the upload under dir and returns its public URL.
	Save(fileHeader *multipart.FileHeader, dir string) (string, error)

	// Delete removes the file behind a URL returned by Save. Missing files are not an error.
	Delete(fileURL string) error
}
