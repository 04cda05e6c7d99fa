package ports

// Storage persists raw file content on disk. Save picks a unique path
// under the configured root and returns it.
type Storage interface {
	Save(data []byte) (string, error)
	Read(path string) ([]byte, error)
}
