package main

// @title           MomShop API
// @version         1.0
// @description     Storefront, order fulfillment and back-office API of the MomShop mini market

// @contact.name   MomShop Support
// @contact.email  support@momshop.cm

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"
