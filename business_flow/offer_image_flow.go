package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/churnbase/churnbase/app/dto"
	"github.com/churnbase/churnbase/config"
	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
	"github.com/churnbase/churnbase/utils"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// OfferImageFlow handles offer image uploads. Each upload stores the original
// on disk plus a pre-rendered JPEG thumbnail for list views, and records both
// paths against the offer.
type OfferImageFlow interface {
	UploadImage(ctx context.Context, offerUUID string, adminID uint, originalFilename string, file io.Reader, fileSize int64) (*dto.OfferImageDTO, error)
	DownloadImage(ctx context.Context, imageUUID string) (string, string, []byte, error)
	PreviewImage(ctx context.Context, imageUUID string) (string, string, []byte, error)
	ListOfferImages(ctx context.Context, offerUUID string) ([]dto.OfferImageDTO, error)
}

// OfferImageFlowImpl implements OfferImageFlow
type OfferImageFlowImpl struct {
	offerRepo repository.OfferRepository
	imageRepo repository.OfferImageRepository
	uploads   config.UploadsConfig
}

// NewOfferImageFlow creates a new offer image flow instance
func NewOfferImageFlow(offerRepo repository.OfferRepository, imageRepo repository.OfferImageRepository, uploads config.UploadsConfig) OfferImageFlow {
	return &OfferImageFlowImpl{
		offerRepo: offerRepo,
		imageRepo: imageRepo,
		uploads:   uploads,
	}
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func (f *OfferImageFlowImpl) UploadImage(ctx context.Context, offerUUID string, adminID uint, originalFilename string, file io.Reader, fileSize int64) (*dto.OfferImageDTO, error) {
	if file == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "file is required", nil)
	}
	if fileSize <= 0 {
		return nil, NewBusinessError("INVALID_FILE", "file size is required", nil)
	}
	if fileSize > int64(f.uploads.MaxImageSize) {
		return nil, NewBusinessError("IMAGE_TOO_LARGE", "image exceeds size limit", ErrImageTooLarge)
	}

	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedImageExts[ext] {
		return nil, NewBusinessError("UNSUPPORTED_IMAGE_TYPE", "allowed image types: jpg, jpeg, png, gif, webp", ErrUnsupportedImage)
	}

	offer, err := f.offerRepo.ByUUID(ctx, offerUUID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, NewBusinessError("OFFER_NOT_FOUND", "offer not found", ErrOfferNotFound)
	}

	storedPath, size, mimeType, err := f.saveImageToDisk(file, ext)
	if err != nil {
		return nil, err
	}

	thumbPath, err := f.writeThumbnail(storedPath)
	if err != nil {
		_ = os.Remove(filepath.FromSlash(storedPath))
		return nil, err
	}

	img := models.OfferImage{
		UUID:             uuid.New(),
		OfferID:          offer.ID,
		UploadedByID:     adminID,
		OriginalFilename: originalFilename,
		StoredPath:       storedPath,
		ThumbnailPath:    thumbPath,
		SizeBytes:        size,
		MimeType:         mimeType,
		Extension:        ext,
	}

	if err := f.imageRepo.Save(ctx, &img); err != nil {
		_ = os.Remove(filepath.FromSlash(storedPath))
		_ = os.Remove(filepath.FromSlash(thumbPath))
		return nil, err
	}

	result := toOfferImageDTO(img)
	return &result, nil
}

func (f *OfferImageFlowImpl) DownloadImage(ctx context.Context, imageUUID string) (string, string, []byte, error) {
	img, err := f.findImage(ctx, imageUUID)
	if err != nil {
		return "", "", nil, err
	}

	cleanPath, err := f.sanitizeImagePath(img.StoredPath)
	if err != nil {
		return "", "", nil, err
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", "", nil, err
	}

	filename := filepath.Base(cleanPath)
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		contentType = img.MimeType
	}

	return filename, contentType, data, nil
}

// PreviewImage serves the pre-rendered thumbnail
func (f *OfferImageFlowImpl) PreviewImage(ctx context.Context, imageUUID string) (string, string, []byte, error) {
	img, err := f.findImage(ctx, imageUUID)
	if err != nil {
		return "", "", nil, err
	}

	cleanPath, err := f.sanitizeImagePath(img.ThumbnailPath)
	if err != nil {
		return "", "", nil, err
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", "", nil, err
	}

	return "preview.jpg", "image/jpeg", data, nil
}

func (f *OfferImageFlowImpl) ListOfferImages(ctx context.Context, offerUUID string) ([]dto.OfferImageDTO, error) {
	offer, err := f.offerRepo.ByUUID(ctx, offerUUID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, NewBusinessError("OFFER_NOT_FOUND", "offer not found", ErrOfferNotFound)
	}

	images, err := f.imageRepo.ListByOffer(ctx, offer.ID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.OfferImageDTO, 0, len(images))
	for _, img := range images {
		result = append(result, toOfferImageDTO(*img))
	}
	return result, nil
}

func (f *OfferImageFlowImpl) findImage(ctx context.Context, imageUUID string) (*models.OfferImage, error) {
	if imageUUID == "" {
		return nil, NewBusinessError("INVALID_UUID", "image uuid is required", nil)
	}

	img, err := f.imageRepo.ByUUID(ctx, imageUUID)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, NewBusinessError("IMAGE_NOT_FOUND", "image not found", ErrImageNotFound)
	}
	return img, nil
}

func toOfferImageDTO(img models.OfferImage) dto.OfferImageDTO {
	return dto.OfferImageDTO{
		UUID:             img.UUID.String(),
		OfferID:          img.OfferID,
		OriginalFilename: img.OriginalFilename,
		SizeBytes:        img.SizeBytes,
		MimeType:         img.MimeType,
		CreatedAt:        img.CreatedAt.Format(time.RFC3339),
	}
}

func (f *OfferImageFlowImpl) saveImageToDisk(reader io.Reader, ext string) (string, int64, string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(reader, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", 0, "", err
	}
	head = head[:n]

	detected := http.DetectContentType(head)
	if detected != "application/octet-stream" && !strings.HasPrefix(detected, "image/") {
		return "", 0, "", NewBusinessError("UNSUPPORTED_IMAGE_TYPE", "file content is not an image", ErrUnsupportedImage)
	}
	if detected == "application/octet-stream" {
		if fromExt := mime.TypeByExtension(ext); fromExt != "" {
			detected = fromExt
		}
	}

	dateDir := utils.UTCNow().Format("2006-01-02")
	baseDir := filepath.Join(f.uploads.BaseDir, "offer-images", dateDir)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", 0, "", err
	}

	filename := uuid.New().String() + ext
	fullPath := filepath.Join(baseDir, filename)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", 0, "", err
	}
	defer dst.Close()

	maxSize := int64(f.uploads.MaxImageSize)
	fullReader := io.MultiReader(bytes.NewReader(head), reader)
	limited := io.LimitReader(fullReader, maxSize+1)
	written, err := io.Copy(dst, limited)
	if err != nil {
		_ = os.Remove(fullPath)
		return "", 0, "", err
	}
	if written > maxSize {
		_ = os.Remove(fullPath)
		return "", 0, "", NewBusinessError("IMAGE_TOO_LARGE", "image exceeds size limit", ErrImageTooLarge)
	}

	return filepath.ToSlash(fullPath), written, detected, nil
}

// writeThumbnail decodes the stored original and renders a bounded JPEG next
// to it
func (f *OfferImageFlowImpl) writeThumbnail(storedPath string) (string, error) {
	src, err := os.Open(filepath.FromSlash(storedPath))
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", NewBusinessError("UNSUPPORTED_IMAGE_TYPE", "failed to decode image", err)
	}

	thumb := resizeImage(img, f.uploads.ThumbnailDim)

	base := strings.TrimSuffix(storedPath, filepath.Ext(storedPath))
	thumbPath := fmt.Sprintf("%s_thumb.jpg", base)
	dst, err := os.Create(filepath.FromSlash(thumbPath))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if err := jpeg.Encode(dst, thumb, &jpeg.Options{Quality: 75}); err != nil {
		_ = os.Remove(filepath.FromSlash(thumbPath))
		return "", err
	}

	return filepath.ToSlash(thumbPath), nil
}

func (f *OfferImageFlowImpl) sanitizeImagePath(path string) (string, error) {
	if path == "" {
		return "", NewBusinessError("INVALID_PATH", "path is empty", nil)
	}
	cleaned := filepath.ToSlash(filepath.Clean(filepath.FromSlash(path)))
	if filepath.IsAbs(cleaned) {
		return "", NewBusinessError("INVALID_PATH", "absolute path not allowed", nil)
	}
	base := filepath.ToSlash(filepath.Clean(filepath.Join(f.uploads.BaseDir, "offer-images")))
	if !strings.HasPrefix(cleaned, base) {
		return "", NewBusinessError("INVALID_PATH", "path is outside allowed directory", nil)
	}
	return filepath.FromSlash(cleaned), nil
}

func resizeImage(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	var nw, nh int
	if w >= h {
		nw = maxDim
		nh = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		nh = maxDim
		nw = int(float64(w) * float64(maxDim) / float64(h))
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	imagedraw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, imagedraw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
