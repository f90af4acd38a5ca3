package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cafe-pos/internal/domain"
	"cafe-pos/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Auth    service.AuthInterface
	Orders  service.OrderInterface
	Menu    service.MenuInterface
	Persons service.PersonInterface
}

func NewHandler(auth service.AuthInterface, orders service.OrderInterface, menu service.MenuInterface, persons service.PersonInterface) *Handler {
	return &Handler{
		Auth:    auth,
		Orders:  orders,
		Menu:    menu,
		Persons: persons,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/login", h.login).Methods("POST")

	r.HandleFunc("/api/orders", h.requireAuth(h.createOrder)).Methods("POST")
	r.HandleFunc("/api/orders", h.requireAuth(h.listOrders)).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.requireAuth(h.getOrder)).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.requireAuth(h.updateOrder)).Methods("PUT")
	r.HandleFunc("/api/orders/{id}/qrcode", h.requireAuth(h.getOrderQRCode)).Methods("GET")

	r.HandleFunc("/api/menu", h.requireAuth(h.getMenu)).Methods("GET")
	r.HandleFunc("/api/menu", h.requireAuth(h.addMenuItem)).Methods("POST")
	r.HandleFunc("/api/menu/categories", h.requireAuth(h.getCategories)).Methods("GET")
	r.HandleFunc("/api/menu/categories", h.requireAuth(h.addCategory)).Methods("POST")
	r.HandleFunc("/api/menu/category/{category}", h.requireAuth(h.getMenuByCategory)).Methods("GET")
	r.HandleFunc("/api/menu/{id}", h.requireAuth(h.updateMenuItem)).Methods("PUT")
	r.HandleFunc("/api/menu/{id}", h.requireAuth(h.deleteMenuItem)).Methods("DELETE")

	r.HandleFunc("/api/persons", h.requireAuth(h.createPerson)).Methods("POST")
	r.HandleFunc("/api/persons", h.requireAuth(h.listPersons)).Methods("GET")
	r.HandleFunc("/api/persons/search", h.requireAuth(h.searchPersons)).Methods("GET")
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "cafe-pos",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusUnauthorized, "Could not verify")
		return
	}

	token, user, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user.Public(),
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No input data provided")
		return
	}

	order, err := h.Orders.Create(r.Context(), currentUser(r), &req)
	if err != nil {
		h.orderError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(currentUser(r))
	if err != nil {
		h.orderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	order, err := h.Orders.Get(currentUser(r), orderID)
	if err != nil {
		h.orderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	var patch domain.OrderPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "No input data provided")
		return
	}

	order, err := h.Orders.Update(r.Context(), currentUser(r), orderID, &patch)
	if err != nil {
		h.orderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	qr, err := h.Orders.ReceiptQR(currentUser(r), orderID)
	if err != nil {
		h.orderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

func (h *Handler) orderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "Unauthorized access")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuByCategory(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.ListByCategory(r.Context(), mux.Vars(r)["category"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) addMenuItem(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No input data provided")
		return
	}

	item, err := h.Menu.Create(r.Context(), &req)
	if err != nil {
		h.menuError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	var patch domain.MenuItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "No input data provided")
		return
	}

	item, err := h.Menu.Update(r.Context(), itemID, &patch)
	if err != nil {
		h.menuError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	if err := h.Menu.Delete(r.Context(), itemID); err != nil {
		h.menuError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Menu item deleted successfully"})
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Menu.Categories()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) addCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "No category name provided")
		return
	}

	if err := h.Menu.AddCategory(req.Name); err != nil {
		h.menuError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Category added successfully",
		"name":    req.Name,
	})
}

func (h *Handler) menuError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Menu item not found")
	case errors.Is(err, domain.ErrCategoryExists):
		writeError(w, http.StatusBadRequest, "Category already exists")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) createPerson(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No input data provided")
		return
	}

	person, err := h.Persons.Create(&req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, person)
}

func (h *Handler) listPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.Persons.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, persons)
}

func (h *Handler) searchPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.Persons.Search(r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, persons)
}
