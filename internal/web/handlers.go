package web

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matealv/recetario/internal/config"
	"github.com/matealv/recetario/internal/db"
	"github.com/matealv/recetario/internal/errors"
	"github.com/matealv/recetario/internal/media"
	"github.com/matealv/recetario/internal/ops"
	"github.com/matealv/recetario/internal/scrape"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db        *sql.DB
	cfg       *config.Config
	extractor scrape.Extractor
	store     *media.Store
	renderer  *Renderer
	flash     *flashCodec
}

// HandleIndex handles GET / — the folders overview.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	folders, err := ops.Folders(h.db)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	summaries := make([]FolderSummary, 0, len(folders.Names))
	for _, name := range folders.Names {
		n := name
		count, err := db.CountRecipes(h.db, db.Filters{Folder: &n})
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		summaries = append(summaries, FolderSummary{Name: name, Count: count})
	}

	h.renderer.renderPage(w, "index", IndexPageData{
		PageData: PageData{
			Title:   "Carpetas",
			Version: h.renderer.version,
			Nav:     "folders",
			Flash:   h.flash.popFlash(w, r),
		},
		Folders: summaries,
	})
}

// HandleFolder handles GET /folders/{name} — recipes in one folder.
func (h *Handlers) HandleFolder(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("folder name is required"))
		return
	}

	result, err := ops.List(h.db, ops.ListInput{
		Page:   parseIntParam(r, "page", 1),
		Folder: &name,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData: PageData{
			Title:   name,
			Version: h.renderer.version,
			Nav:     "folders",
			Flash:   h.flash.popFlash(w, r),
		},
		Folder:     name,
		Items:      result.Items,
		Pagination: result.Pagination,
	})
}

// HandleList handles GET /recipes — all recipes, paginated.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := ops.List(h.db, ops.ListInput{Page: parseIntParam(r, "page", 1)})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData: PageData{
			Title:   "Recetas",
			Version: h.renderer.version,
			Nav:     "recipes",
			Flash:   h.flash.popFlash(w, r),
		},
		Items:      result.Items,
		Pagination: result.Pagination,
	})
}

// HandleDetail handles GET /recipes/{id} — a single recipe.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	result, err := ops.Fetch(h.db, id)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	folders, err := ops.Folders(h.db)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	caption := ""
	if result.Caption != nil {
		caption = *result.Caption
	}

	title := result.DisplayFolder
	if result.Title != nil {
		title = *result.Title
	}

	h.renderer.renderPage(w, "detail", DetailPageData{
		PageData: PageData{
			Title:   title,
			Version: h.renderer.version,
			Nav:     "recipes",
			Flash:   h.flash.popFlash(w, r),
		},
		Recipe:      result,
		CaptionHTML: renderCaption(caption),
		Folders:     folders.Names,
	})
}

// HandleSearch handles GET /search. An empty query renders the form
// without running a search.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	data := SearchPageData{
		PageData: PageData{
			Title:   "Buscar",
			Version: h.renderer.version,
			Nav:     "search",
			Flash:   h.flash.popFlash(w, r),
		},
		Query:    query,
		HasQuery: query != "",
	}

	if query == "" {
		h.renderer.renderPage(w, "search", data)
		return
	}

	result, err := ops.Search(h.db, ops.SearchInput{
		Query: query,
		Page:  parseIntParam(r, "page", 1),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data.Items = result.Items
	data.Pagination = result.Pagination
	h.renderer.renderPage(w, "search", data)
}

// HandleAddForm handles GET /add — the paste-a-URL form.
func (h *Handlers) HandleAddForm(w http.ResponseWriter, r *http.Request) {
	folders, err := ops.Folders(h.db)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "add", AddPageData{
		PageData: PageData{
			Title:   "Añadir receta",
			Version: h.renderer.version,
			Nav:     "add",
			Flash:   h.flash.popFlash(w, r),
		},
		Folders: folders.Names,
	})
}

// HandleAdd handles POST /add — extract and save a post.
func (h *Handlers) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	input := ops.AddInput{
		URL:    r.FormValue("url"),
		Title:  r.FormValue("title"),
		Folder: r.FormValue("folder"),
	}

	if strings.TrimSpace(input.URL) == "" {
		h.flash.setFlash(w, Flash{Level: "warning", Message: "Pega la URL del post."})
		http.Redirect(w, r, "/add", http.StatusFound)
		return
	}

	result, err := ops.Add(r.Context(), h.db, h.extractor, h.store, input)
	if err != nil {
		if errors.Is(err, errors.ErrExtractionFailed) {
			h.flash.setFlash(w, Flash{Level: "danger", Message: "No se pudo extraer el post."})
			http.Redirect(w, r, "/add", http.StatusFound)
			return
		}
		h.renderer.renderError(w, r, err)
		return
	}

	h.flash.setFlash(w, Flash{Level: "success", Message: "Receta guardada correctamente."})
	http.Redirect(w, r, "/folders/"+url.PathEscape(result.Folder), http.StatusFound)
}

// HandleDelete handles POST /recipes/{id}/delete.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	result, err := ops.Delete(h.db, h.store, id)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.flash.setFlash(w, Flash{Level: "info", Message: "Receta eliminada."})
	http.Redirect(w, r, "/recipes", http.StatusFound)
}

// HandleMove handles POST /recipes/{id}/folder — reassign a recipe.
func (h *Handlers) HandleMove(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	result, err := ops.Move(h.db, ops.MoveInput{ID: id, Folder: r.FormValue("folder")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.flash.setFlash(w, Flash{Level: "success", Message: "Receta movida a " + result.Folder + "."})
	http.Redirect(w, r, "/recipes/"+strconv.FormatInt(id, 10), http.StatusFound)
}

// HandleCreateFolder handles POST /api/folders. Accepts a JSON body or
// form data with a "name" field.
func (h *Handlers) HandleCreateFolder(w http.ResponseWriter, r *http.Request) {
	name, err := folderNameFromBody(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	result, err := ops.CreateFolder(h.db, name)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, result)
}

// HandleDeleteFolder handles DELETE /api/folders/{name}.
func (h *Handlers) HandleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("folder name is required"))
		return
	}

	result, err := ops.DeleteFolder(h.db, name)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

func folderNameFromBody(r *http.Request) (string, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", errors.NewInvalidRequest("invalid JSON body")
		}
		return body.Name, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", errors.NewInvalidRequest("invalid form data")
	}
	return r.FormValue("name"), nil
}

// parseID extracts the numeric recipe id from the route.
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.NewInvalidRequest("recipe id must be a positive integer")
	}
	return id, nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
