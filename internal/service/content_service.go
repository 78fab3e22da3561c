package service

import (
	"course_market_backend/internal/config"
	"course_market_backend/internal/util"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ContentService handles file uploads: course thumbnails, lesson videos and
// avatars. MIME types are sniffed from content; for videos the duration is
// probed with ffprobe so the stored value never depends on client input.
type ContentService struct {
	StorageService *StorageService
	Cfg            *config.Config
}

func NewContentService(storageService *StorageService, cfg *config.Config) *ContentService {
	return &ContentService{
		StorageService: storageService,
		Cfg:            cfg,
	}
}

// UploadImage validates and stores an image under the given folder
// ("thumbnails" or "avatars") and returns its public URL.
func (s *ContentService) UploadImage(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeImage}); err != nil {
		return "", util.ErrInvalidImageType
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := folder + "/" + time.Now().Format("20060102150405") + "_" + util.GenerateRandomString(6) + ext

	return s.StorageService.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type"))
}

// VideoUploadResult carries the public URL plus probed metadata; the duration
// is what the lesson form stores.
type VideoUploadResult struct {
	URL      string `json:"url"`
	Duration int    `json:"duration"` // seconds
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// UploadLessonVideo validates the extension and content, probes duration from
// a temp copy, then pushes the file to storage.
func (s *ContentService) UploadLessonVideo(ctx context.Context, file *multipart.FileHeader) (*VideoUploadResult, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	isValidType := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			isValidType = true
			break
		}
	}
	if !isValidType {
		return nil, util.ErrInvalidVideoExt
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeVideo, "application/octet-stream"}); err != nil {
		return nil, fmt.Errorf("invalid video content: %v", err)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	// ffprobe needs a file on disk, so stage the upload locally first.
	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, err
	}
	tempPath := filepath.Join(tempDir, fmt.Sprintf("upload_%d%s", time.Now().UnixNano(), ext))
	defer os.Remove(tempPath)

	dst, err := os.Create(tempPath)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, err
	}
	dst.Close()

	info, err := util.GetVideoInfo(tempPath)
	if err != nil {
		return nil, err
	}

	filename := "videos/" + time.Now().Format("20060102150405") + "_" + util.GenerateRandomString(6) + ext
	url, err := s.StorageService.UploadFile(ctx, filename, tempPath, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	return &VideoUploadResult{
		URL:      url,
		Duration: int(info.Duration + 0.5),
		Width:    info.Width,
		Height:   info.Height,
	}, nil
}
