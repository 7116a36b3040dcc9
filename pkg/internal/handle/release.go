package handle

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/torrentvault/pkg/configs"
	ctxPkg "github.com/yeisme/torrentvault/pkg/context"
	"github.com/yeisme/torrentvault/pkg/internal/apperr"
	"github.com/yeisme/torrentvault/pkg/internal/service"
	"github.com/yeisme/torrentvault/pkg/internal/types"
)

// ReleaseHandlers 发行相关处理器. Service 为空时按请求从 context 中的存储管理器构造.
type ReleaseHandlers struct {
	Service  *service.ReleaseService
	MaxBytes int64
}

// NewReleaseHandlers 以进程级服务构造，参照集合缓存与并发合并在请求之间共享.
func NewReleaseHandlers(svc *service.ReleaseService, cfg configs.IngestConfig) *ReleaseHandlers {
	return &ReleaseHandlers{Service: svc, MaxBytes: cfg.MaxTorrentBytes}
}

// Upload 返回上传处理器.
func (h *ReleaseHandlers) Upload() gin.HandlerFunc {
	return h.upload
}

// upload 处理 multipart 上传：torrent 文件部分加 release JSON 字段.
//
//	@Summary		上传种子与发行信息
//	@Description	解析并清洗种子文件，写入种子存储，在一个事务中创建分组、艺人、种子与发行记录
//	@Tags			发行
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			torrent	formData	file			true	"种子文件"
//	@Param			release	formData	string			true	"发行信息 JSON，包含 torrentType、分组、info 与 artists"
//	@Success		200		{object}	types.Result		"入库结果"
//	@Failure		400		{object}	map[string]string	"种子格式或发行信息不合法"
//	@Failure		401		{object}	map[string]string	"缺少上传者身份"
//	@Failure		404		{object}	map[string]string	"引用的艺人不存在"
//	@Failure		500		{object}	map[string]string	"服务器内部错误"
//	@Router			/api/v1/upload [post]
func (h *ReleaseHandlers) upload(c *gin.Context) {
	ctx := c.Request.Context()

	fh, err := c.FormFile("torrent")
	if err != nil {
		writeError(c, apperr.Validation("upload", "torrent file part is required"))
		return
	}

	data, err := readPart(fh, h.MaxBytes)
	if err != nil {
		writeError(c, err)
		return
	}

	raw := c.PostForm("release")
	if raw == "" {
		writeError(c, apperr.Validation("upload", "release field is required"))
		return
	}

	form, err := types.ParseReleaseForm([]byte(raw))
	if err != nil {
		writeError(c, err)
		return
	}

	sub, err := form.ToSubmission()
	if err != nil {
		writeError(c, err)
		return
	}

	sub.Torrent = data
	sub.FileName = fh.Filename
	sub.UploaderID = ctxPkg.GetUploader(ctx)

	svc := h.Service
	if svc == nil {
		if svc, err = service.NewReleaseServiceFromContext(ctx); err != nil {
			writeError(c, err)
			return
		}
	}

	res, err := svc.Ingest(ctx, sub)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// readPart 读取上传部分，超过 limit 字节时返回 ValidationError.
func readPart(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	if limit > 0 && fh.Size > limit {
		return nil, apperr.Validation("upload", fmt.Sprintf("torrent exceeds %d bytes", limit))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperr.Validation("upload", "cannot open torrent part: "+err.Error())
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperr.Validation("upload", "cannot read torrent part: "+err.Error())
	}

	if limit > 0 && int64(len(data)) > limit {
		return nil, apperr.Validation("upload", fmt.Sprintf("torrent exceeds %d bytes", limit))
	}

	return data, nil
}
