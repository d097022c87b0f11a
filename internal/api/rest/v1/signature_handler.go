package v1

import (
	"net/http"
	"strings"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/signatures"
	"github.com/MGTheTrain/docsign/internal/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// SignatureHandler defines the interface for signing, verification and hashing
type SignatureHandler interface {
	Sign(ctx *gin.Context)
	Verify(ctx *gin.Context)
	Hash(ctx *gin.Context)
}

type signatureHandler struct {
	signatureService     signatures.SignatureService
	defaultHashAlgorithm string
}

// NewSignatureHandler creates a new SignatureHandler. defaultHashAlgorithm is reported when /hash omits the algorithm.
func NewSignatureHandler(signatureService signatures.SignatureService, defaultHashAlgorithm string) SignatureHandler {
	if defaultHashAlgorithm == "" {
		defaultHashAlgorithm = crypto.DefaultHashAlgorithm
	}
	return &signatureHandler{
		signatureService:     signatureService,
		defaultHashAlgorithm: defaultHashAlgorithm,
	}
}

// Sign handles the POST request to sign an uploaded file
// @Summary Sign a file
// @Description Hash the file, pad the digest and apply the uploaded private key.
// @Tags Signature
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param file formData file true "Document to sign"
// @Param private_key formData file true "Private key as <d>:<n>"
// @Success 200 {file} file "Base64 encoded signature"
// @Failure 400 {object} ErrorResponse
// @Router /sign [post]
func (handler *signatureHandler) Sign(ctx *gin.Context) {
	document, filename, err := readFormFile(ctx, "file")
	if err != nil {
		writeBadRequest(ctx, "invalid document: %v", err.Error())
		return
	}

	privateKey, _, err := readFormFile(ctx, "private_key")
	if err != nil {
		writeBadRequest(ctx, "invalid key: %v", err.Error())
		return
	}

	signature, err := handler.signatureService.Sign(ctx.Request.Context(), document, string(privateKey))
	if err != nil {
		writeError(ctx, "signing failed", err)
		return
	}

	ctx.Header("Content-Disposition", httputil.AttachmentDisposition(filename+".sig"))
	ctx.Data(http.StatusOK, "application/octet-stream", []byte(signature))
}

// Verify handles the POST request to verify a signature
// @Summary Verify a signature
// @Description Verify the signature of a file against a directory key or an uploaded public key.
// @Tags Signature
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Signed document"
// @Param signature formData file true "Base64 encoded signature"
// @Param key_id formData string false "Directory key ID"
// @Param public_key_file formData file false "Public key as <e>:<n>"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} ErrorResponse
// @Router /verify [post]
func (handler *signatureHandler) Verify(ctx *gin.Context) {
	document, _, err := readFormFile(ctx, "file")
	if err != nil {
		writeBadRequest(ctx, "invalid document: %v", err.Error())
		return
	}

	signature, _, err := readFormFile(ctx, "signature")
	if err != nil {
		writeBadRequest(ctx, "invalid signature: %v", err.Error())
		return
	}

	var keyID *string
	if value := strings.TrimSpace(ctx.PostForm("key_id")); value != "" {
		keyID = &value
	}

	var publicKey *string
	if _, err := ctx.FormFile("public_key_file"); err == nil {
		data, _, err := readFormFile(ctx, "public_key_file")
		if err != nil {
			writeBadRequest(ctx, "invalid public key: %v", err.Error())
			return
		}
		value := string(data)
		publicKey = &value
	}

	if keyID == nil && publicKey == nil {
		writeError(ctx, "must provide either key_id or public_key_file", crypto.ErrMissingKey)
		return
	}

	result, err := handler.signatureService.Verify(ctx.Request.Context(), document, string(signature), keyID, publicKey)
	if err != nil {
		writeError(ctx, "verification failed", err)
		return
	}

	ctx.JSON(http.StatusOK, VerifyResponse{
		Valid:   result.Valid,
		Message: result.Message,
		Signer:  result.Signer,
	})
}

// Hash handles the POST request to compute the digest of a file
// @Summary Hash a file
// @Tags Signature
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to hash"
// @Param algorithm formData string false "md5 or sha256"
// @Success 200 {object} HashResponse
// @Failure 400 {object} ErrorResponse
// @Router /hash [post]
func (handler *signatureHandler) Hash(ctx *gin.Context) {
	var request HashRequest

	if err := ctx.ShouldBind(&request); err != nil {
		writeBadRequest(ctx, "invalid hash request: %v", err.Error())
		return
	}

	if err := request.Validate(); err != nil {
		writeBadRequest(ctx, "%v", err.Error())
		return
	}

	document, _, err := readFormFile(ctx, "file")
	if err != nil {
		writeBadRequest(ctx, "invalid document: %v", err.Error())
		return
	}

	algorithm := request.Algorithm
	if algorithm == "" {
		algorithm = handler.defaultHashAlgorithm
	}

	digest, err := handler.signatureService.Hash(ctx.Request.Context(), document, algorithm)
	if err != nil {
		writeError(ctx, "hashing failed", err)
		return
	}

	ctx.JSON(http.StatusOK, HashResponse{
		Algorithm: algorithm,
		Digest:    digest,
	})
}
