package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MGTheTrain/docsign/internal/domain/keys"
	"github.com/MGTheTrain/docsign/internal/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// KeyHandler defines the interface for key generation and public key directory operations
type KeyHandler interface {
	GenerateKeys(ctx *gin.Context)
	ListDirectory(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Register(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// keyHandler struct holds the services
type keyHandler struct {
	keyGenerationService keys.KeyGenerationService
	keyDirectoryService  keys.KeyDirectoryService
	defaultKeySize       int
}

// NewKeyHandler creates a new KeyHandler. defaultKeySize applies when a request omits key_size.
func NewKeyHandler(keyGenerationService keys.KeyGenerationService, keyDirectoryService keys.KeyDirectoryService, defaultKeySize int) KeyHandler {
	return &keyHandler{
		keyGenerationService: keyGenerationService,
		keyDirectoryService:  keyDirectoryService,
		defaultKeySize:       defaultKeySize,
	}
}

// GenerateKeys handles the POST request to generate an RSA key pair
// @Summary Generate an RSA key pair
// @Description Generate a key pair, register the public key in the directory and return the private key for download.
// @Tags Key
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param name formData string true "Key owner name"
// @Param department formData string true "Key owner department"
// @Param key_size formData int false "Modulus size in bits"
// @Success 200 {file} file "Private key as <d>:<n>"
// @Failure 400 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /keys [post]
func (handler *keyHandler) GenerateKeys(ctx *gin.Context) {
	var request GenerateKeyRequest

	if err := ctx.ShouldBind(&request); err != nil {
		writeBadRequest(ctx, "invalid key request: %v", err.Error())
		return
	}

	if request.KeySize == 0 {
		request.KeySize = handler.defaultKeySize
	}

	if err := request.Validate(); err != nil {
		writeBadRequest(ctx, "%v", err.Error())
		return
	}

	generated, err := handler.keyGenerationService.Generate(ctx.Request.Context(), request.Name, request.Department, request.KeySize)
	if err != nil {
		writeError(ctx, "key generation failed", err)
		return
	}

	filename := fmt.Sprintf("%s_private.key", strings.ReplaceAll(generated.Entry.Name, " ", "_"))
	ctx.Header("Content-Disposition", httputil.AttachmentDisposition(filename))
	ctx.Header("X-Key-ID", generated.Entry.ID)
	ctx.Data(http.StatusOK, "application/octet-stream", []byte(generated.PrivateKey.String()))
}

// ListDirectory handles the GET request to list the public key directory
// @Summary List registered public keys
// @Tags Directory
// @Produce json
// @Success 200 {object} DirectoryResponse
// @Failure 500 {object} ErrorResponse
// @Router /directory [get]
func (handler *keyHandler) ListDirectory(ctx *gin.Context) {
	entries, err := handler.keyDirectoryService.List(ctx.Request.Context())
	if err != nil {
		writeError(ctx, "list directory failed", err)
		return
	}

	response := DirectoryResponse{Entries: []KeyEntryResponse{}}
	for _, entry := range entries {
		response.Entries = append(response.Entries, newKeyEntryResponse(entry))
	}

	ctx.JSON(http.StatusOK, response)
}

// GetByID handles the GET request to retrieve a directory entry by ID
// @Summary Retrieve a registered public key by ID
// @Tags Directory
// @Produce json
// @Param id path string true "Key ID"
// @Success 200 {object} KeyEntryResponse
// @Failure 404 {object} ErrorResponse
// @Router /directory/{id} [get]
func (handler *keyHandler) GetByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	entry, err := handler.keyDirectoryService.GetByID(ctx.Request.Context(), keyID)
	if err != nil {
		writeError(ctx, fmt.Sprintf("key with id %s", keyID), err)
		return
	}

	ctx.JSON(http.StatusOK, newKeyEntryResponse(entry))
}

// Register handles the POST request to add an existing public key to the directory
// @Summary Register a public key
// @Tags Directory
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Key owner name"
// @Param department formData string true "Key owner department"
// @Param public_key formData file true "Public key as <e>:<n>"
// @Success 201 {object} RegisterKeyResponse
// @Failure 400 {object} ErrorResponse
// @Router /directory [post]
func (handler *keyHandler) Register(ctx *gin.Context) {
	var request RegisterKeyRequest

	if err := ctx.ShouldBind(&request); err != nil {
		writeBadRequest(ctx, "invalid register request: %v", err.Error())
		return
	}

	if err := request.Validate(); err != nil {
		writeBadRequest(ctx, "%v", err.Error())
		return
	}

	publicKey, _, err := readFormFile(ctx, "public_key")
	if err != nil {
		writeBadRequest(ctx, "invalid public key: %v", err.Error())
		return
	}

	entry, err := handler.keyDirectoryService.Register(ctx.Request.Context(), request.Name, request.Department, string(publicKey))
	if err != nil {
		writeError(ctx, "invalid public key", err)
		return
	}

	ctx.JSON(http.StatusCreated, RegisterKeyResponse{
		Message: "Public key registered successfully",
		KeyID:   entry.ID,
	})
}

// DeleteByID handles the DELETE request to remove a directory entry
// @Summary Delete a registered public key by ID
// @Tags Directory
// @Produce json
// @Param id path string true "Key ID"
// @Success 200 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /directory/{id} [delete]
func (handler *keyHandler) DeleteByID(ctx *gin.Context) {
	keyID := ctx.Param("id")

	if err := handler.keyDirectoryService.DeleteByID(ctx.Request.Context(), keyID); err != nil {
		writeError(ctx, fmt.Sprintf("error deleting key with id %s", keyID), err)
		return
	}

	var infoResponse InfoResponse
	infoResponse.Message = "Key deleted successfully"
	ctx.JSON(http.StatusOK, infoResponse)
}

func newKeyEntryResponse(entry *keys.KeyEntry) KeyEntryResponse {
	return KeyEntryResponse{
		ID:              entry.ID,
		Name:            entry.Name,
		Department:      entry.Department,
		PublicKey:       entry.PublicKey,
		DateTimeCreated: entry.DateTimeCreated,
	}
}
