package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"soldout-pos/internal/backup"
	"soldout-pos/internal/domain"
	"soldout-pos/internal/service/catalog"
	"soldout-pos/internal/service/checkout"
)

type catalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in catalog.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in catalog.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type categoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type channelService interface {
	List(ctx context.Context) ([]domain.PaymentChannel, error)
	Create(ctx context.Context, name string) (*domain.PaymentChannel, error)
	Delete(ctx context.Context, id string) error
}

type cartService interface {
	Lines() []domain.CartLine
	AddLine(product domain.Product, variant *domain.Variant) []domain.CartLine
	SetQuantity(key domain.LineKey, quantity int) []domain.CartLine
	ToggleGift(key domain.LineKey, isGift bool) []domain.CartLine
	Clear()
}

type checkoutService interface {
	Attempt(ctx context.Context, paymentChannelID string) (*checkout.Result, error)
	Commit(ctx context.Context, paymentChannelID string, override bool) (*checkout.Result, error)
}

type orderService interface {
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Cancel(ctx context.Context, id string) (*domain.Order, error)
}

// Deps carries the services and transfer endpoints the router wires.
type Deps struct {
	CatalogSvc  catalogService
	CategorySvc categoryService
	ChannelSvc  channelService
	CartSvc     cartService
	CheckoutSvc checkoutService
	OrderSvc    orderService

	BackupSource backup.Source
	Restorer     backup.Restorer
}

func (d Deps) validate() error {
	if d.CatalogSvc == nil || d.CategorySvc == nil || d.ChannelSvc == nil ||
		d.CartSvc == nil || d.CheckoutSvc == nil || d.OrderSvc == nil {
		return errors.New("httpserver: missing service dependency")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	// The counter UI is served from a different origin during development.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	api.GET("/products", listProductsHandler(deps.CatalogSvc))
	api.POST("/products", createProductHandler(deps.CatalogSvc))
	api.PUT("/products/:id", updateProductHandler(deps.CatalogSvc))
	api.DELETE("/products/:id", deleteProductHandler(deps.CatalogSvc))
	api.POST("/products/variants/preview", previewVariantsHandler())

	api.GET("/categories", listCategoriesHandler(deps.CategorySvc))
	api.POST("/categories", createCategoryHandler(deps.CategorySvc))
	api.DELETE("/categories/:id", deleteCategoryHandler(deps.CategorySvc))

	api.GET("/channels", listChannelsHandler(deps.ChannelSvc))
	api.POST("/channels", createChannelHandler(deps.ChannelSvc))
	api.DELETE("/channels/:id", deleteChannelHandler(deps.ChannelSvc))

	api.GET("/cart", getCartHandler(deps.CartSvc))
	api.POST("/cart/lines", addCartLineHandler(deps.CartSvc, deps.CatalogSvc))
	api.PUT("/cart/lines", setCartQuantityHandler(deps.CartSvc))
	api.PUT("/cart/lines/gift", toggleGiftHandler(deps.CartSvc))
	api.DELETE("/cart", clearCartHandler(deps.CartSvc))

	api.POST("/checkout", checkoutHandler(deps.CheckoutSvc))
	api.POST("/checkout/attempt", checkoutAttemptHandler(deps.CheckoutSvc))

	api.GET("/orders", listOrdersHandler(deps.OrderSvc))
	api.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
	api.POST("/orders/:id/cancel", cancelOrderHandler(deps.OrderSvc))

	api.GET("/export/orders.csv", exportOrdersCSVHandler(deps.OrderSvc, deps.ChannelSvc))
	api.GET("/backup", exportBackupHandler(deps.BackupSource))
	api.POST("/backup", importBackupHandler(deps.Restorer))

	return router, nil
}

// writeError maps domain errors onto the status codes the counter UI
// distinguishes. Anything unknown is a 500.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrChannelProtected):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{"rejected": err.Error()})
	case errors.Is(err, domain.ErrCheckoutFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
