// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"log/slog"

	"github.com/AleutianAI/CivicDesk/services/registry/handlers"
	"github.com/AleutianAI/CivicDesk/services/registry/middleware"
	"github.com/AleutianAI/CivicDesk/services/registry/store"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes wires the full route table and middleware chain.
func SetupRoutes(router *gin.Engine, s *store.Store, logger *slog.Logger) {
	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		middleware.Metrics(),
		middleware.RateLimit(50, 100),
	)

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		complaints := api.Group("/complaints")
		{
			complaints.GET("", handlers.ListComplaints(s))
			complaints.GET("/:id", handlers.GetComplaint(s))
			complaints.POST("", handlers.CreateComplaint(s))
			complaints.PUT("/:id", handlers.UpdateComplaint(s))
			complaints.DELETE("/:id", handlers.DeleteComplaint(s))
		}
		agencies := api.Group("/agencies")
		{
			agencies.GET("", handlers.ListAgencies(s))
			agencies.GET("/:id", handlers.GetAgency(s))
			agencies.POST("", handlers.CreateAgency(s))
			agencies.PUT("/:id", handlers.UpdateAgency(s))
			agencies.DELETE("/:id", handlers.DeleteAgency(s))
		}
	}
}
