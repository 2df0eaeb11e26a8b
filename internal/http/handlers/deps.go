package handlers

import (
	"github.com/jmoiron/sqlx"

	"carshop/internal/config"
	"carshop/internal/repos"
	"carshop/internal/services"
	"carshop/internal/storage"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler     *AuthHandler
	CarHandler      *CarHandler
	CategoryHandler *CategoryHandler
	BrandHandler    *BrandHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
	ProfileHandler  *ProfileHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	carRepo := repos.NewCarRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	brandRepo := repos.NewBrandRepo(db)
	userRepo := repos.NewUserRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	cartRepo := repos.NewCartRepo(storage.NewKV(db))

	authSvc := &services.AuthService{Users: userRepo}
	catalogSvc := services.NewCatalogService(carRepo, catRepo, brandRepo)
	cartSvc := services.NewCartService(cartRepo, carRepo)
	orderSvc := services.NewOrderService(orderRepo, carRepo, cartSvc)
	userSvc := services.NewUserService(userRepo, orderRepo)
	dashSvc := services.NewDashboardService(carRepo, orderRepo, userRepo)
	exportSvc := services.NewExportService(carRepo, orderRepo)

	cookies := SessionCookies{Secure: cfg.CookieSecure}

	return &Deps{
		Auth: authSvc,

		AuthHandler:     &AuthHandler{Auth: authSvc, Cookies: cookies},
		CarHandler:      &CarHandler{Catalog: catalogSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		BrandHandler:    &BrandHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc, Cookies: cookies},
		OrderHandler:    &OrderHandler{Order: orderSvc, Cookies: cookies},
		ProfileHandler:  &ProfileHandler{Users: userSvc},
		AdminHandler:    &AdminHandler{Orders: orderSvc, Users: userSvc, Dashboard: dashSvc, Export: exportSvc},
	}
}
