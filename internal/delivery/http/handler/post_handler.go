package handler

import (
	"errors"
	"net/http"

	"oncotrack/internal/delivery/dto"
	"oncotrack/internal/usecase"
	"oncotrack/pkg/response"
	"oncotrack/pkg/validator"
)

type PostHandler struct {
	postUsecase usecase.PostUsecase
	validator   *validator.CustomValidator
}

func NewPostHandler(postUsecase usecase.PostUsecase, validator *validator.CustomValidator) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
		validator:   validator,
	}
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePostRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	userID, ok := sessionUser(w, r, nil)
	if !ok {
		return
	}

	post, err := h.postUsecase.CreatePost(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidPost) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalServerError(w, "Failed to create post")
		return
	}

	response.JSON(w, http.StatusCreated, post)
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postUsecase.ListPosts(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get posts")
		return
	}

	response.JSON(w, http.StatusOK, posts)
}
