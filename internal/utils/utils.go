// Package utils provides filesystem helpers shared across the tool.
package utils

import (
	"bufio"
	"io"
	"os"
	"time"
)

// EnsureDirExists checks if a directory exists at the given path and creates it
// (including parents) if it does not. Returns an error if the directory cannot
// be created or accessed.
func EnsureDirExists(path string) error {
	// Check if the directory exists
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		// Create the directory if it doesn't exist
		err := os.MkdirAll(path, os.ModePerm)
		if err != nil {
			return err
		}

	} else if err != nil {
		return err
	}
	return nil
}

// CopyFile copies src to dst byte-for-byte by streaming, then carries the
// source's modification time over to the copy. An existing dst is truncated.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(dstFile)
	if _, err := io.Copy(bw, srcFile); err != nil {
		dstFile.Close()
		os.Remove(dst)
		return err
	}
	if err := bw.Flush(); err != nil {
		dstFile.Close()
		os.Remove(dst)
		return err
	}
	if err := dstFile.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	return os.Chtimes(dst, time.Now(), info.ModTime())
}
