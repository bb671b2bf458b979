package domain

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/habitquest/backend/internal/model"
	"github.com/habitquest/backend/pkg/errorx"
	"github.com/habitquest/backend/pkg/storage"
	"github.com/habitquest/backend/pkg/xcontext"
	"github.com/google/uuid"
)

// Photo proofs top out well below this; anything larger is not a phone photo
// of a finished quest.
const maxProofSize = 5 << 20

type FileDomain interface {
	UploadProof(context.Context, *model.UploadProofRequest) (*model.UploadProofResponse, error)
}

type fileDomain struct {
	storage storage.Storage
}

func NewFileDomain(s storage.Storage) FileDomain {
	return &fileDomain{storage: s}
}

// UploadProof streams a photo proof to object storage and returns its public
// URL. The completion then references the URL in its proof payload.
func (d *fileDomain) UploadProof(
	ctx context.Context, req *model.UploadProofRequest,
) (*model.UploadProofResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not signed in")
	}

	httpReq := xcontext.HTTPRequest(ctx)
	if err := httpReq.ParseMultipartForm(maxProofSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Image too large, max is %d bytes", maxProofSize)
	}

	file, header, err := httpReq.FormFile("image")
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Please provide an image")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxProofSize))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read uploaded file: %v", err)
		return nil, errorx.Unknown
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, errorx.New(errorx.BadRequest, "Unsupported content type %s", mime)
	}

	ext := strings.TrimPrefix(mime, "image/")
	resp, err := d.storage.Upload(ctx, &storage.UploadObject{
		Bucket:   xcontext.Configs(ctx).Storage.Bucket,
		Prefix:   fmt.Sprintf("proofs/%s", userID),
		FileName: fmt.Sprintf("%s.%s", uuid.NewString(), ext),
		Mime:     mime,
		Data:     data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload proof of %s (%s): %v", userID, header.Filename, err)
		return nil, errorx.Unknown
	}

	return &model.UploadProofResponse{URL: resp.Url}, nil
}
