package v1

import (
	"github.com/MGTheTrain/docsign/internal/domain/keys"
	"github.com/MGTheTrain/docsign/internal/domain/signatures"

	"github.com/gin-gonic/gin"
)

// RouteSettings holds request defaults taken from configuration
type RouteSettings struct {
	DefaultKeySize       int
	DefaultHashAlgorithm string
}

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	keyGenerationService keys.KeyGenerationService,
	keyDirectoryService keys.KeyDirectoryService,
	signatureService signatures.SignatureService,
	settings RouteSettings) {

	v1 := r.Group(BasePath) // lookup in version file

	v1.GET("/health", Health)

	// Keys Routes
	keyHandler := NewKeyHandler(keyGenerationService, keyDirectoryService, settings.DefaultKeySize)
	v1.POST("/keys", keyHandler.GenerateKeys)
	v1.GET("/directory", keyHandler.ListDirectory)
	v1.GET("/directory/:id", keyHandler.GetByID)
	v1.POST("/directory", keyHandler.Register)
	v1.DELETE("/directory/:id", keyHandler.DeleteByID)

	// Signature Routes
	signatureHandler := NewSignatureHandler(signatureService, settings.DefaultHashAlgorithm)
	v1.POST("/sign", signatureHandler.Sign)
	v1.POST("/verify", signatureHandler.Verify)
	v1.POST("/hash", signatureHandler.Hash)
}
