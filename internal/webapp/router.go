package webapp

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"outlay/internal/apiclient"
	"outlay/internal/middleware"
	"outlay/internal/validator"
	"outlay/web"
)

// NewRouter assembles the frontend: embedded templates and static assets,
// cookie sessions, and the route table. The root path doubles as the sign-in
// page, so credentials may also be posted to "/".
func NewRouter(sessionSecret string, api *apiclient.Client) *gin.Engine {
	validator.Register()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())

	store := cookie.NewStore([]byte(sessionSecret))
	router.Use(sessions.Sessions("outlay_session", store))

	router.SetHTMLTemplate(template.Must(template.New("").ParseFS(web.TemplatesFS, "templates/*.html")))
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic(err)
	}
	router.StaticFS("/static", http.FS(staticFS))

	h := NewHandlers(api)

	router.GET("/", h.SignInForm)
	router.POST("/", h.SignIn)
	router.GET("/sign-in", h.SignInForm)
	router.POST("/sign-in", h.SignIn)
	router.GET("/register", h.RegisterForm)
	router.POST("/register", h.Register)

	authed := router.Group("/", RequireLogin())
	authed.POST("/sign-out", h.SignOut)
	authed.GET("/dashboard", h.Dashboard)
	authed.POST("/create", h.CreateExpense)
	authed.POST("/delete", h.DeleteExpense)
	authed.GET("/update/:expense_id", h.UpdateForm)
	authed.POST("/update/:expense_id", h.UpdateExpense)

	return router
}
