package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"GoMFiles/internal/config"
	"GoMFiles/internal/middleware"
	"GoMFiles/internal/service"
	"GoMFiles/pkg/mfiles"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MaxUploadSize limits the body of a staged file.
const MaxUploadSize = 64 << 20

// VaultHandler serves structure, object and file endpoints.
type VaultHandler struct {
	VaultService *service.VaultService
	Logger       *zap.SugaredLogger
	Config       *config.Config
}

func NewVaultHandler(vaultService *service.VaultService, logger *zap.SugaredLogger, cfg *config.Config) *VaultHandler {
	return &VaultHandler{VaultService: vaultService, Logger: logger, Config: cfg}
}

func (h *VaultHandler) ObjectTypes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.VaultService.ObjectTypes(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, toTypeInfos(rows, objectTypeInfo))
}

func (h *VaultHandler) Classes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.VaultService.Classes(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, toTypeInfos(rows, classInfo))
}

func (h *VaultHandler) ClassDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid class id")
		return
	}
	c, props, err := h.VaultService.Class(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, toClassDetails(c, props))
}

func (h *VaultHandler) Properties(w http.ResponseWriter, r *http.Request) {
	rows, err := h.VaultService.Properties(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, toTypeInfos(rows, propertyInfo))
}

func (h *VaultHandler) ValueLists(w http.ResponseWriter, r *http.Request) {
	rows, err := h.VaultService.ValueLists(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, toValueLists(rows))
}

func (h *VaultHandler) ValueListItems(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid value list id")
		return
	}
	rows, err := h.VaultService.ValueListItems(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, toValueListItems(rows))
}

// Stage stores the raw request body and answers with its upload ID.
func (h *VaultHandler) Stage(w http.ResponseWriter, r *http.Request) {
	content, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxUploadSize))
	if err != nil {
		writeMessage(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}
	up, err := h.VaultService.Stage(r.Context(), content)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, mfiles.UploadInfo{UploadID: up.ID, Size: up.Size})
}

// Search answers objects?q=... and rejects any other query parameter.
func (h *VaultHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	for key := range query {
		if key != "q" {
			writeMessage(w, http.StatusBadRequest, "unsupported search parameter: "+key)
			return
		}
	}
	list, more, err := h.VaultService.Search(r.Context(), query.Get("q"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	out := mfiles.SearchResults{Items: make([]mfiles.ObjectVersion, 0, len(list)), MoreResults: more}
	for i := range list {
		out.Items = append(out.Items, toObjectVersion(&list[i]))
	}
	writeJSON(w, out)
}

func (h *VaultHandler) CreateObject(w http.ResponseWriter, r *http.Request) {
	objType, ok := intParam(r, "type")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid object type")
		return
	}
	var env mfiles.ObjectEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid object envelope: "+err.Error())
		return
	}
	obj, err := h.VaultService.CreateObject(r.Context(), objType, &env)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	h.audit(r, "create", objType, obj.ObjID)
	writeJSON(w, toObjectVersion(obj))
}

// audit records which account changed an object.
func (h *VaultHandler) audit(r *http.Request, action string, objType, objID int) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	h.Logger.Infow("object changed", "action", action, "user_id", userID, "type", objType, "id", objID)
}

// objectAddress reads {type} and {id} from the route.
func objectAddress(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	objType, ok1 := intParam(r, "type")
	objID, ok2 := intParam(r, "id")
	if !ok1 || !ok2 {
		writeMessage(w, http.StatusBadRequest, "invalid object address")
		return 0, 0, false
	}
	return objType, objID, true
}

func (h *VaultHandler) Object(w http.ResponseWriter, r *http.Request) {
	objType, objID, ok := objectAddress(w, r)
	if !ok {
		return
	}
	obj, err := h.VaultService.Object(r.Context(), objType, objID, chi.URLParam(r, "version"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, toObjectVersion(obj))
}

type checkoutRequest struct {
	Value string `json:"Value"`
}

func (h *VaultHandler) SetCheckout(w http.ResponseWriter, r *http.Request) {
	objType, objID, ok := objectAddress(w, r)
	if !ok {
		return
	}
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid check-out status")
		return
	}
	obj, err := h.VaultService.SetCheckout(r.Context(), objType, objID, chi.URLParam(r, "version"), req.Value)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, toObjectVersion(obj))
}

func (h *VaultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	objType, objID, ok := objectAddress(w, r)
	if !ok {
		return
	}
	obj, err := h.VaultService.MarkDeleted(r.Context(), objType, objID)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	h.audit(r, "delete", objType, objID)
	writeJSON(w, toObjectVersion(obj))
}

func (h *VaultHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	objType, objID, ok := objectAddress(w, r)
	if !ok {
		return
	}
	all, _ := strconv.ParseBool(r.URL.Query().Get("allVersions"))
	if err := h.VaultService.Destroy(r.Context(), objType, objID, all); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	h.audit(r, "destroy", objType, objID)
	w.WriteHeader(http.StatusOK)
}

// FileContent streams the raw bytes of one file.
func (h *VaultHandler) FileContent(w http.ResponseWriter, r *http.Request) {
	objType, objID, ok := objectAddress(w, r)
	if !ok {
		return
	}
	fileID, ok := intParam(r, "file")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid file id")
		return
	}
	f, err := h.VaultService.FileContent(r.Context(), objType, objID, chi.URLParam(r, "version"), fileID)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f.Content)
}
