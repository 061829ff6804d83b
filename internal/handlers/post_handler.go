package handlers

import (
	"net/http"

	"classifieds/internal/interfaces"
	"classifieds/internal/models"
)

type PostHandler struct {
	*BaseHandler
	posts interfaces.PostRepository
	users interfaces.UserRepository
}

func NewPostHandler(base *BaseHandler, posts interfaces.PostRepository, users interfaces.UserRepository) *PostHandler {
	return &PostHandler{BaseHandler: base, posts: posts, users: users}
}

// ListPosts handles GET /api/posts?author_id=&published=
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	published, err := parseBoolParam(r, "published")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	posts, err := h.posts.List(r.Context(), interfaces.PostFilter{
		AuthorID:  r.URL.Query().Get("author_id"),
		Published: published,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	writeJSON(w, http.StatusOK, posts)
}

// CreatePost handles POST /api/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if _, err := h.users.GetByID(r.Context(), req.AuthorID); err != nil {
		h.respondError(w, r, notFound("author", err))
		return
	}

	post := &models.Post{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		AuthorID:  req.AuthorID,
	}
	if err := h.posts.Create(r.Context(), post); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("post", err))
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, notFound("post", err))
		return
	}

	var req models.UpdatePostRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	if err := h.posts.Update(r.Context(), post); err != nil {
		h.respondError(w, r, notFound("post", err))
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.posts.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, notFound("post", err))
		return
	}

	writeDeleted(w, "post", id)
}
