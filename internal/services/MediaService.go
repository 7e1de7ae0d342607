package services

import (
	"fmt"
	"io"
	"kinstore/internal/apperr"
	"kinstore/internal/providers"
	"kinstore/internal/structures"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type MediaKind string

const (
	MediaImage     MediaKind = "image"
	MediaVideo     MediaKind = "video"
	MediaThumbnail MediaKind = "thumbnail"
)

func ParseMediaKind(value string) (MediaKind, bool) {
	switch k := MediaKind(value); k {
	case MediaImage, MediaVideo, MediaThumbnail:
		return k, true
	}
	return "", false
}

type MediaServiceInterface interface {
	// Upload stores a file under <mediaDir>/<kind>s and returns its public path.
	Upload(kind MediaKind, header *multipart.FileHeader) (string, error)
	// SaveProductImage stores a product picture under <publicDir>/images.
	SaveProductImage(header *multipart.FileHeader) (string, error)
	MaxSize(kind MediaKind) int64
}

type MediaService struct {
	conf    structures.UploadConfig
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	now     func() time.Time
}

func NewMediaService(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) MediaServiceInterface {
	return &MediaService{
		conf:    conf.Upload,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

func (s *MediaService) MaxSize(kind MediaKind) int64 {
	switch kind {
	case MediaVideo:
		return s.conf.MaxVideoSize
	case MediaThumbnail:
		return s.conf.MaxThumbnailSize
	default:
		return s.conf.MaxImageSize
	}
}

func acceptedFamily(kind MediaKind) string {
	if kind == MediaVideo {
		return "video/"
	}
	return "image/"
}

// validate checks size and sniffed content type without touching the disk.
func (s *MediaService) validate(kind MediaKind, header *multipart.FileHeader) (*mimetype.MIME, error) {
	if limit := s.MaxSize(kind); header.Size > limit {
		return nil, apperr.TooLarge(fmt.Sprintf("%s exceeds the maximum size of %dMB", kind, limit>>20))
	}
	if header.Size == 0 {
		return nil, apperr.BadRequest("file is empty", nil)
	}

	src, err := header.Open()
	if err != nil {
		return nil, apperr.BadRequest("unable to read file", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, apperr.BadRequest("unable to read file", err)
	}
	if !strings.HasPrefix(mtype.String(), acceptedFamily(kind)) || mtype.Extension() == "" {
		return nil, apperr.BadRequest(fmt.Sprintf("file type %s is not allowed for %s", mtype.String(), kind), nil)
	}
	return mtype, nil
}

func writeUpload(header *multipart.FileHeader, dir, name string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err = io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filepath.Join(dir, name))
		return err
	}
	return dst.Close()
}

func (s *MediaService) Upload(kind MediaKind, header *multipart.FileHeader) (string, error) {
	mtype, err := s.validate(kind, header)
	if err != nil {
		s.metrics.IncUploadsTotal(string(kind), false)
		return "", err
	}

	// The file server derives Content-Type from the extension, so it always
	// follows the sniffed type and never the client's file name.
	ext := mtype.Extension()
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), token, ext)
	folder := string(kind) + "s"

	if err = writeUpload(header, filepath.Join(s.conf.MediaDir, folder), name); err != nil {
		s.metrics.IncUploadsTotal(string(kind), false)
		return "", apperr.Internal("unable to store file", err)
	}

	s.metrics.IncUploadsTotal(string(kind), true)
	s.logger.Infof(providers.TypePost, "Stored %s upload %s (%d bytes, %s)", kind, name, header.Size, mtype.String())
	return "/media/" + folder + "/" + name, nil
}

// productImageName keeps the client file name with whitespace turned into '-'
// and its extension replaced by ext.
func productImageName(original, ext string, now time.Time) string {
	base := filepath.Base(filepath.Clean("/" + original))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, base)
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), base, ext)
}

func (s *MediaService) SaveProductImage(header *multipart.FileHeader) (string, error) {
	mtype, err := s.validate(MediaImage, header)
	if err != nil {
		s.metrics.IncUploadsTotal("product", false)
		return "", err
	}

	name := productImageName(header.Filename, mtype.Extension(), s.now())
	if err = writeUpload(header, filepath.Join(s.conf.PublicDir, "images"), name); err != nil {
		s.metrics.IncUploadsTotal("product", false)
		return "", apperr.Internal("unable to store image", err)
	}

	s.metrics.IncUploadsTotal("product", true)
	return "/images/" + name, nil
}
