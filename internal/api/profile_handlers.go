package api

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/profilesvc/internal/logger"
	"github.com/vytor/profilesvc/internal/models"
)

// maxBodyBytes bounds how much of a PUT body is read.
const maxBodyBytes = 1 << 20

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	profile, err := s.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	update := decodeProfileUpdate(w, r)

	res, err := s.ProfileService.UpsertProfile(r.Context(), userID, update)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Profile)
}

// decodeProfileUpdate reads email and name from a JSON or urlencoded body.
// Other content types are not read.
// Anything unreadable yields an empty update rather than an error.
func decodeProfileUpdate(w http.ResponseWriter, r *http.Request) models.ProfileUpdate {
	log := logger.FromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case mediaType == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			log.Debug("ignoring unreadable form body: %v", err)
			return models.ProfileUpdate{}
		}
		return models.ProfileUpdate{
			Email: formValue(r, "email"),
			Name:  formValue(r, "name"),
		}
	case !isJSONMediaType(mediaType):
		log.Debug("ignoring body with content type %q", mediaType)
		return models.ProfileUpdate{}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		return models.ProfileUpdate{}
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		log.Debug("ignoring malformed JSON body: %v", err)
		return models.ProfileUpdate{}
	}
	return models.ProfileUpdate{
		Email: stringField(fields, "email"),
		Name:  stringField(fields, "name"),
	}
}

func isJSONMediaType(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func formValue(r *http.Request, key string) *string {
	if vs, ok := r.PostForm[key]; ok && len(vs) > 0 {
		return models.StringPtr(vs[0])
	}
	return nil
}

func stringField(fields map[string]any, key string) *string {
	if v, ok := fields[key].(string); ok {
		return models.StringPtr(v)
	}
	return nil
}
