package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	if s.productSvc != nil {
		products := s.echo.Group("/products")
		products.GET("", s.listProducts)
		products.GET("/:id", s.getProduct)
		products.POST("/add", s.createProduct)
	}

	if s.orderSvc != nil {
		orders := s.echo.Group("/orders")
		orders.POST("", s.createOrder)
		orders.GET("/:id", s.getOrder)
	}

	if s.userSvc != nil {
		users := s.echo.Group("/users")
		users.GET("/:id", s.getUser)
		users.POST("/add", s.createUser)
	}
}
