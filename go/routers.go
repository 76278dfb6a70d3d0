package marketplaceserver

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every bounded context.
type ApiHandleFunctions struct {
	// Routes for the marketplace part of the API
	MarketplaceAPI MarketplaceAPI
	// Routes for the slugs part of the API
	SlugsAPI SlugsAPI
	// Routes for the collections part of the API
	CollectionsAPI CollectionsAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing engine. Requests with a method the
// path does not serve get a 405 problem carrying an Allow header.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	routes := getRoutes(handleFunctions)
	for _, route := range routes {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	router.HandleMethodNotAllowed = true
	router.NoMethod(methodNotAllowed(routes))
	return router
}

// DefaultHandleFunc is the default handler for routes without an implementation.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func methodNotAllowed(routes []Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed := allowedMethods(routes, c.Request.URL.Path)
		if len(allowed) > 0 {
			c.Header("Allow", strings.Join(allowed, ", "))
		}
		respondError(c, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", c.Request.Method))
	}
}

func allowedMethods(routes []Route, path string) []string {
	var out []string
	for _, route := range routes {
		if matchPattern(route.Pattern, path) && !slices.Contains(out, route.Method) {
			out = append(out, route.Method)
		}
	}
	slices.Sort(out)
	return out
}

// matchPattern compares segment by segment; ":name" segments match any value.
func matchPattern(pattern, path string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if strings.HasPrefix(want[i], ":") {
			continue
		}
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"ListProducts",
			http.MethodGet,
			"/api/products",
			handleFunctions.MarketplaceAPI.ListProducts,
		},
		{
			"GetProduct",
			http.MethodGet,
			"/api/products/:productId",
			handleFunctions.MarketplaceAPI.GetProduct,
		},
		{
			"PlaceOrder",
			http.MethodPost,
			"/api/orders",
			handleFunctions.MarketplaceAPI.PlaceOrder,
		},
		{
			"TransferName",
			http.MethodPost,
			"/api/nft/transfer",
			handleFunctions.MarketplaceAPI.TransferName,
		},
		{
			"GetSlug",
			http.MethodPost,
			"/api/getSlug",
			handleFunctions.SlugsAPI.GetSlug,
		},
		{
			"StoreSlug",
			http.MethodPost,
			"/api/slugstore",
			handleFunctions.SlugsAPI.StoreSlug,
		},
		{
			"ProfileCollections",
			http.MethodPost,
			"/api/profile/collections",
			handleFunctions.SlugsAPI.ProfileCollections,
		},
		{
			"CollectionListings",
			http.MethodPost,
			"/api/opensea",
			handleFunctions.CollectionsAPI.CollectionListings,
		},
		{
			"WalletNFTs",
			http.MethodPost,
			"/api/mystore",
			handleFunctions.CollectionsAPI.WalletNFTs,
		},
	}
}
