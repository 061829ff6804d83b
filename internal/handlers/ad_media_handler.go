package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"classifieds/internal/interfaces"
	"classifieds/internal/media"
	"classifieds/internal/models"
	"classifieds/internal/storage"
)

// multipart parts above this size spill to temp files
const multipartMemory = 32 << 20

type AdMediaHandler struct {
	*BaseHandler
	ads   interfaces.AdRepository
	media interfaces.AdMediaRepository
	store storage.Store
}

func NewAdMediaHandler(
	base *BaseHandler,
	ads interfaces.AdRepository,
	mediaRepo interfaces.AdMediaRepository,
	store storage.Store,
) *AdMediaHandler {
	return &AdMediaHandler{
		BaseHandler: base,
		ads:         ads,
		media:       mediaRepo,
		store:       store,
	}
}

// pendingRelease collects the objects of removed items; they are deleted only
// once the new list is committed.
type pendingRelease struct {
	items []media.Item
}

func (p *pendingRelease) Release(ctx context.Context, item media.Item) error {
	p.items = append(p.items, item)
	return nil
}

func (h *AdMediaHandler) limits() media.Limits {
	return media.Limits{
		MaxItems:     h.Cfg.MaxMediaItems,
		MaxImageSize: h.Cfg.MaxImageSize,
		MaxVideoSize: h.Cfg.MaxVideoSize,
		AllowMain:    true,
	}
}

// loadList returns the ad's gallery and the version it was read at; save
// refuses to write over a newer one.
func (h *AdMediaHandler) loadList(ctx context.Context, adID string, opts ...media.Option) (*media.List, int64, error) {
	if _, err := h.ads.GetByID(ctx, adID); err != nil {
		return nil, 0, notFound("ad", err)
	}

	rows, version, err := h.media.Gallery(ctx, adID)
	if err != nil {
		return nil, 0, notFound("ad", err)
	}

	l := media.NewList(h.limits(), opts...)
	l.Load(itemsFromRows(rows))
	return l, version, nil
}

// save persists the list and then frees the objects of removed items.
func (h *AdMediaHandler) save(ctx context.Context, adID string, version int64, l *media.List, released *pendingRelease) ([]models.AdMedia, error) {
	err := h.media.ReplaceForAd(ctx, adID, version, rowsFromItems(adID, l.Items()))
	if errors.Is(err, interfaces.ErrStaleMedia) {
		return nil, NewAPIError(http.StatusConflict, "media_conflict", "The gallery was changed by another request, reload and retry", err)
	}
	if err != nil {
		return nil, notFound("ad", err)
	}

	if released != nil {
		h.deleteObjects(ctx, released.items)
	}

	return h.media.ListByAd(ctx, adID)
}

func (h *AdMediaHandler) deleteObjects(ctx context.Context, items []media.Item) {
	for _, it := range items {
		if it.Key == "" {
			continue
		}
		if err := h.store.Delete(ctx, it.Key); err != nil {
			log.Printf("Error deleting media object %s: %v", it.Key, err)
		}
	}
}

func itemsFromRows(rows []models.AdMedia) []media.Item {
	items := make([]media.Item, 0, len(rows))
	for _, m := range rows {
		items = append(items, media.Item{
			ID:          m.ID,
			URL:         m.URL,
			AltText:     m.AltText,
			IsMain:      m.IsMain,
			Type:        media.Type(m.Type),
			ContentType: m.ContentType,
			Size:        m.Size,
			Position:    m.Position,
			Key:         m.StorageKey,
		})
	}
	return items
}

func rowsFromItems(adID string, items []media.Item) []models.AdMedia {
	rows := make([]models.AdMedia, 0, len(items))
	for _, it := range items {
		rows = append(rows, models.AdMedia{
			ID:          it.ID,
			AdID:        adID,
			URL:         it.URL,
			StorageKey:  it.Key,
			AltText:     it.AltText,
			Type:        string(it.Type),
			ContentType: it.ContentType,
			Size:        it.Size,
			Position:    it.Position,
			IsMain:      it.IsMain,
		})
	}
	return rows
}

func mediaError(err error) error {
	switch {
	case errors.Is(err, media.ErrTooManyItems):
		return NewAPIError(http.StatusBadRequest, "too_many_items", err.Error(), err)
	case errors.Is(err, media.ErrItemNotFound):
		return NewAPIError(http.StatusNotFound, "media_not_found", "media not found", err)
	case errors.Is(err, media.ErrIndexOutOfRange):
		return NewAPIError(http.StatusBadRequest, "invalid_position", "position is out of range", err)
	case errors.Is(err, media.ErrNoFiles):
		return NewAPIError(http.StatusBadRequest, "no_files", "No files were uploaded", err)
	}
	return err
}

// uploader stores each file under the ad's prefix. A failure removes what this
// batch already stored.
func (h *AdMediaHandler) uploader(adID string) media.UploadFunc {
	return func(ctx context.Context, files []media.File) ([]media.Item, error) {
		items := make([]media.Item, 0, len(files))
		for _, f := range files {
			item, err := h.storeFile(ctx, adID, f)
			if err != nil {
				h.deleteObjects(ctx, items)
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}
}

func (h *AdMediaHandler) storeFile(ctx context.Context, adID string, f media.File) (media.Item, error) {
	if f.Open == nil {
		return media.Item{}, fmt.Errorf("file %s has no content", f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return media.Item{}, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	id := uuid.NewString()
	key := storage.AdMediaKey(adID, id, f.Name)
	url, err := h.store.Save(ctx, key, f.ContentType, rc)
	if err != nil {
		return media.Item{}, fmt.Errorf("store %s: %w", f.Name, err)
	}

	typ, _ := media.TypeOf(f.ContentType)
	return media.Item{
		ID:          id,
		URL:         url,
		AltText:     f.Name,
		Type:        typ,
		ContentType: f.ContentType,
		Size:        f.Size,
		Key:         key,
	}, nil
}

func sniffHeader(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return media.DetectContentType(f, fh.Header.Get("Content-Type")), nil
}

// incomingFiles validates the multipart "files" field against the upload limits.
func (h *AdMediaHandler) incomingFiles(form *multipart.Form) ([]media.File, error) {
	headers := form.File["files"]
	if len(headers) == 0 {
		return nil, badRequest("no_files", "No files were uploaded")
	}
	if limit := h.Cfg.MaxUploadFiles; limit > 0 && len(headers) > limit {
		return nil, badRequest("too_many_files", fmt.Sprintf("At most %d files can be uploaded at once", limit))
	}

	files := make([]media.File, 0, len(headers))
	for _, fh := range headers {
		if limit := h.Cfg.MaxUploadFileSize; limit > 0 && fh.Size > limit {
			return nil, badRequest("file_too_large", fmt.Sprintf("%s is larger than %s", fh.Filename, media.FormatSize(limit)))
		}
		contentType, err := sniffHeader(fh)
		if err != nil {
			return nil, NewAPIError(http.StatusBadRequest, "invalid_upload", "Could not read "+fh.Filename, err)
		}

		fh := fh
		files = append(files, media.File{
			Name:        fh.Filename,
			ContentType: contentType,
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return files, nil
}

// UploadMedia godoc
// @Summary Upload ad media
// @Description Appends images and videos to the ad gallery. With replace=true the existing gallery is swapped out.
// @Tags ad-media
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Ad ID"
// @Param files formData file true "Images or videos"
// @Param replace formData bool false "Replace the current gallery"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/ads/{id}/upload [post]
func (h *AdMediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	maxBody := int64(h.Cfg.MaxUploadFiles)*h.Cfg.MaxUploadFileSize + (1 << 20)
	if maxBody > 1<<20 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, r, NewAPIError(http.StatusBadRequest, "payload_too_large", "Upload is too large", err))
			return
		}
		h.respondError(w, r, NewAPIError(http.StatusBadRequest, "invalid_multipart", "Expected a multipart form with files", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files, err := h.incomingFiles(r.MultipartForm)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	replace, _ := strconv.ParseBool(r.FormValue("replace"))

	released := &pendingRelease{}
	l, version, err := h.loadList(ctx, adID, media.WithUploader(h.uploader(adID)), media.WithReleaser(released))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if replace {
		for _, it := range l.Items() {
			if _, err := l.Remove(ctx, it.ID); err != nil {
				h.respondError(w, r, mediaError(err))
				return
			}
		}
	}

	added, rejected, err := l.Add(ctx, files)
	if err != nil {
		h.respondError(w, r, mediaError(err))
		return
	}
	if rejected == nil {
		rejected = []media.Rejection{}
	}
	if len(added) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":    "no_valid_files",
			"message":  "None of the uploaded files could be added",
			"rejected": rejected,
		})
		return
	}

	saved, err := h.save(ctx, adID, version, l, released)
	if err != nil {
		h.deleteObjects(ctx, added)
		h.respondError(w, r, err)
		return
	}

	log.Printf("Stored %d media file(s) for ad %s (%d rejected, replace=%t)", len(added), adID, len(rejected), replace)
	writeJSON(w, http.StatusCreated, map[string]any{
		"data":     saved,
		"rejected": rejected,
	})
}

// ListMedia handles GET /api/ads/{id}/media
func (h *AdMediaHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	adID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if _, err := h.ads.GetByID(r.Context(), adID); err != nil {
		h.respondError(w, r, notFound("ad", err))
		return
	}
	rows, err := h.media.ListByAd(r.Context(), adID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// ReorderMedia handles PUT /api/ads/{id}/media/order. The body is either
// {"from": i, "to": j} or the drag-end pair {"active_id", "over_id"}.
func (h *AdMediaHandler) ReorderMedia(w http.ResponseWriter, r *http.Request) {
	adID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var req models.ReorderMediaRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	l, version, err := h.loadList(r.Context(), adID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	switch {
	case req.From != nil && req.To != nil:
		err = l.Move(*req.From, *req.To)
	case req.ActiveID != "" && req.OverID != "":
		err = l.MoveByID(req.ActiveID, req.OverID)
	default:
		err = badRequest("invalid_reorder", "Provide from/to or active_id/over_id")
	}
	if err != nil {
		h.respondError(w, r, mediaError(err))
		return
	}

	h.writeSaved(w, r, adID, version, l, nil)
}

// SetMainMedia handles PUT /api/ads/{id}/media/{mediaID}/main
func (h *AdMediaHandler) SetMainMedia(w http.ResponseWriter, r *http.Request) {
	adID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	l, version, err := h.loadList(r.Context(), adID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := l.MakeMain(chi.URLParam(r, "mediaID")); err != nil {
		h.respondError(w, r, mediaError(err))
		return
	}

	h.writeSaved(w, r, adID, version, l, nil)
}

// UpdateMedia handles PATCH /api/ads/{id}/media/{mediaID}
func (h *AdMediaHandler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	adID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var req models.UpdateMediaRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	l, version, err := h.loadList(r.Context(), adID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := l.SetAltText(chi.URLParam(r, "mediaID"), req.AltText); err != nil {
		h.respondError(w, r, mediaError(err))
		return
	}

	h.writeSaved(w, r, adID, version, l, nil)
}

// DeleteMedia handles DELETE /api/ads/{id}/media/{mediaID}; removing the main
// item promotes the next one.
func (h *AdMediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	adID, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	released := &pendingRelease{}
	l, version, err := h.loadList(r.Context(), adID, media.WithReleaser(released))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if _, err := l.Remove(r.Context(), chi.URLParam(r, "mediaID")); err != nil {
		h.respondError(w, r, mediaError(err))
		return
	}

	h.writeSaved(w, r, adID, version, l, released)
}

func (h *AdMediaHandler) writeSaved(w http.ResponseWriter, r *http.Request, adID string, version int64, l *media.List, released *pendingRelease) {
	saved, err := h.save(r.Context(), adID, version, l, released)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
