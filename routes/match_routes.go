package routes

import (
	"fmt"
	"net/http"

	"matchup_server/controllers"
	"matchup_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up the match creation and lookup routes.
// The label route must be registered after the fixed-path routes in main so
// that mux does not swallow them as labels.
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	r.HandleFunc("/", controller.CreateMatch).Methods("POST")
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, "test")
	}).Methods("OPTIONS")
	r.HandleFunc("/{label}", controller.GetMatch).Methods("GET")
}
