package main

import (
	"flag"
	"github.com/Avi18971911/softscanner-admin/internal/backend/model"
	"github.com/Avi18971911/softscanner-admin/internal/fake_backend"
	"github.com/Avi18971911/softscanner-admin/internal/logging"
	"net/http"
	"os"
)

func main() {
	addr := flag.String("addr", ":8080", "address to listen on")
	flag.Parse()

	logger := logging.NewAccessLogger(os.Stdout)

	backend := fake_backend.NewBackend(logger)
	backend.SeedUser(model.User{ID: "admin", Name: "Admin", Email: "admin@example.com", Password: "admin"})
	backend.SeedProducts(
		model.Product{ID: "p1", Name: "Milk", Price: model.NewPrice("2.49"), ExpirationDate: "2025-01-31"},
		model.Product{ID: "p2", Name: "Bread", Price: model.NewPrice("3.10")},
	)

	logger.Infof("Starting fake backend on %s", *addr)
	logger.Fatalf("Stopped Listening to Webserver! %v", http.ListenAndServe(*addr, backend.Handler()))
}
