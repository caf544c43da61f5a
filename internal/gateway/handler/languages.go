package handler

import (
	"net/http"

	"repograph/internal/archgraph"
)

const languagesDetailMaxFiles = 4000

// HandleLanguagesDetail returns per-language file and line counts for a
// repository's default branch. Best-effort and capped.
//
// GET /api/repo/{owner}/{name}/languages-detail
func (s *Service) HandleLanguagesDetail(w http.ResponseWriter, r *http.Request) {
	owner, name := r.PathValue("owner"), r.PathValue("name")

	dir, cleanup, err := s.materializer.Clone(r.Context(), owner, name)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cleanup()

	counts, err := archgraph.CountLanguages(dir, languagesDetailMaxFiles)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
