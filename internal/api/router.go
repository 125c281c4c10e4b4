package api

import "net/http"

// NewRouter wires all REST endpoints onto one mux.
func NewRouter(orders *OrderHandler, tables *TableHandler, menus *MenuHandler, staffers *StaffHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/orders", orders.List)
	mux.HandleFunc("POST /api/orders", orders.Create)
	mux.HandleFunc("GET /api/orders/{id}", orders.Get)
	mux.HandleFunc("PUT /api/orders/{id}", orders.Update)
	mux.HandleFunc("DELETE /api/orders/{id}", orders.Cancel)
	mux.HandleFunc("PATCH /api/orders/{id}/status", orders.UpdateStatus)
	mux.HandleFunc("POST /api/orders/{id}/items", orders.AddItem)
	mux.HandleFunc("DELETE /api/orders/{id}/items/{itemID}", orders.RemoveItem)
	mux.HandleFunc("GET /api/orders/table/{tableID}/active", orders.ActiveByTable)

	mux.HandleFunc("GET /api/tables", tables.List)
	mux.HandleFunc("POST /api/tables", tables.Create)
	mux.HandleFunc("GET /api/tables/{id}", tables.Get)
	mux.HandleFunc("PUT /api/tables/{id}", tables.Update)
	mux.HandleFunc("DELETE /api/tables/{id}", tables.Delete)

	mux.HandleFunc("GET /api/menu/categories", menus.ListCategories)
	mux.HandleFunc("POST /api/menu/categories", menus.CreateCategory)
	mux.HandleFunc("PUT /api/menu/categories/{id}", menus.UpdateCategory)
	mux.HandleFunc("DELETE /api/menu/categories/{id}", menus.DeleteCategory)
	mux.HandleFunc("GET /api/menu/items", menus.ListItems)
	mux.HandleFunc("POST /api/menu/items", menus.CreateItem)
	mux.HandleFunc("GET /api/menu/items/{id}", menus.GetItem)
	mux.HandleFunc("PUT /api/menu/items/{id}", menus.UpdateItem)
	mux.HandleFunc("DELETE /api/menu/items/{id}", menus.DeleteItem)

	mux.HandleFunc("GET /api/staff", staffers.List)
	mux.HandleFunc("POST /api/staff", staffers.Create)
	mux.HandleFunc("POST /api/staff/login", staffers.Login)
	mux.HandleFunc("GET /api/staff/{id}", staffers.Get)
	mux.HandleFunc("PUT /api/staff/{id}", staffers.Update)
	mux.HandleFunc("DELETE /api/staff/{id}", staffers.Delete)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, messageResponse{Message: "ok"})
	})

	return mux
}
