package main

import "os"

// WriteProcessedFile persists the comment-stripped rendition of a file.
func WriteProcessedFile(filePath string, content string) error {
	return os.WriteFile(FromPortablePath(ToPortablePath(filePath)), []byte(content), 0644)
}

// ApplyProcessedFiles writes every processed file, stopping at the first
// failure so a permission problem surfaces instead of being half-applied.
func ApplyProcessedFiles(contentByFile map[string]string) error {
	for filePath, content := range contentByFile {
		if err := WriteProcessedFile(filePath, content); err != nil {
			return err
		}
	}
	return nil
}
