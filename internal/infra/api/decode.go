package api

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"mise/internal/domain/entity"
	domainerrors "mise/internal/domain/errors"
)

// The backend emits the same field under different keys depending on the
// endpoint (and sometimes the deployment). Decoding therefore works on
// untyped payloads with a fixed key-priority order per field: the first
// present key wins. Fields with a safe default never fail the decode;
// id, name and price do.

// parseObject unmarshals raw JSON into an untyped object.
func parseObject(raw []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, domainerrors.ErrDecode.WrapMessage(err.Error())
	}

	return m, nil
}

// parseList accepts either a bare JSON array or an envelope object holding
// the array under any of the given keys.
func parseList(raw []byte, envelopeKeys ...string) ([]map[string]any, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var list []map[string]any
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, domainerrors.ErrDecode.WrapMessage(err.Error())
		}

		return list, nil
	}

	obj, err := parseObject(raw)
	if err != nil {
		return nil, err
	}
	for _, key := range envelopeKeys {
		value, ok := obj[key]
		if !ok {
			continue
		}
		items, ok := value.([]any)
		if !ok {
			continue
		}
		list := make([]map[string]any, 0, len(items))
		for _, item := range items {
			entry, ok := item.(map[string]any)
			if !ok {
				return nil, domainerrors.ErrDecode.WrapMessage("list element is not an object")
			}
			list = append(list, entry)
		}

		return list, nil
	}

	return nil, domainerrors.ErrDecode.WrapMessage("no list found under " + strings.Join(envelopeKeys, "/"))
}

// stringField returns the first present, non-empty string among keys.
func stringField(m map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v, true
			}
		case float64:
			// Some deployments send numeric identifiers.
			return formatNumber(v), true
		}
	}

	return "", false
}

// numberField returns the first present numeric value among keys, accepting
// integer, floating point and numeric-string encodings.
func numberField(m map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			return v, true
		case string:
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				return parsed, true
			}
		}
	}

	return 0, false
}

// boolField returns the first present boolean among keys.
func boolField(m map[string]any, keys ...string) (bool, bool) {
	for _, key := range keys {
		if v, ok := m[key].(bool); ok {
			return v, true
		}
	}

	return false, false
}

// timeField parses the first present timestamp among keys.
func timeField(m map[string]any, keys ...string) (time.Time, bool) {
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}
	for _, key := range keys {
		raw, ok := m[key].(string)
		if !ok || raw == "" {
			continue
		}
		for _, layout := range layouts {
			if at, err := time.Parse(layout, raw); err == nil {
				return at, true
			}
		}
	}

	return time.Time{}, false
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ResolveRestaurantID funnels every restaurant-id source the backend has been
// observed to use through one resolver: direct key, nested restaurant object,
// then the session user id. Historically these were four independent fallback
// chains scattered across call sites.
func ResolveRestaurantID(m map[string]any, fallbackUserID string) string {
	if id, ok := stringField(m, "restaurant_id", "restaurantId", "rid", "resId"); ok {
		return id
	}
	if nested, ok := m["restaurant"].(map[string]any); ok {
		if id, ok := stringField(nested, "_id", "id"); ok {
			return id
		}
	}

	return fallbackUserID
}

// DecodeProduct maps one untyped product object onto the domain entity.
func DecodeProduct(m map[string]any, fallbackRestaurantID string) (entity.Product, error) {
	id, ok := stringField(m, "_id", "id", "pid")
	if !ok {
		return entity.Product{}, domainerrors.ErrDecode.WrapMessage("product id missing")
	}
	name, ok := stringField(m, "product_name", "name")
	if !ok {
		return entity.Product{}, domainerrors.ErrDecode.WrapMessage("product name missing for " + id)
	}
	price, ok := numberField(m, "product_price", "price")
	if !ok {
		return entity.Product{}, domainerrors.ErrDecode.WrapMessage("product price missing for " + id)
	}
	if price < 0 {
		return entity.Product{}, domainerrors.ErrDecode.WrapMessage("negative price for " + id)
	}

	product := entity.Product{
		ID:           id,
		RestaurantID: ResolveRestaurantID(m, fallbackRestaurantID),
		Name:         name,
		Price:        int64(math.Round(price)),
	}

	product.Category, _ = stringField(m, "food_category", "category")
	product.Description, _ = stringField(m, "description", "desc")

	if extra, ok := numberField(m, "extraTime", "extra_time"); ok {
		product.ExtraTime = int(extra)
	}

	product.IsAvailable = true
	if available, ok := boolField(m, "availability", "is_available"); ok {
		product.IsAvailable = available
	}

	product.IsActive = true
	if active, ok := boolField(m, "isActive", "is_active"); ok {
		product.IsActive = active
	}

	if image, ok := stringField(m, "product_photo", "photo_id", "image_id"); ok {
		product.ImageID = image
	} else {
		// Photos are keyed by product id when no explicit reference exists.
		product.ImageID = id
	}

	return product, nil
}

// DecodeOrder maps one untyped order object onto the domain entity.
func DecodeOrder(m map[string]any, fallbackRestaurantID string) (entity.Order, error) {
	id, ok := stringField(m, "_id", "id", "oid")
	if !ok {
		return entity.Order{}, domainerrors.ErrDecode.WrapMessage("order id missing")
	}

	order := entity.Order{
		ID:           id,
		RestaurantID: ResolveRestaurantID(m, fallbackRestaurantID),
		Status:       entity.OrderStatusPending,
	}

	if status, ok := stringField(m, "status", "order_status"); ok {
		order.Status = entity.OrderStatus(strings.ToLower(strings.TrimSpace(status)))
	}

	if rawItems, ok := m["products"].([]any); ok {
		order.Items = decodeOrderItems(rawItems)
	} else if rawItems, ok := m["items"].([]any); ok {
		order.Items = decodeOrderItems(rawItems)
	}

	if total, ok := numberField(m, "totalAmount", "total_amount", "total"); ok {
		order.TotalAmount = int64(math.Round(total))
	} else {
		for _, item := range order.Items {
			order.TotalAmount += item.Price * int64(item.Quantity)
		}
	}

	if at, ok := timeField(m, "scheduleDate", "scheduled_at", "schedule_time"); ok {
		order.ScheduledAt = &at
	}
	if at, ok := timeField(m, "created_at", "createdAt", "Time", "time"); ok {
		order.CreatedAt = at
	}

	return order, nil
}

func decodeOrderItems(raw []any) []entity.OrderItem {
	items := make([]entity.OrderItem, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		item := entity.OrderItem{Quantity: 1}
		item.ProductID, _ = stringField(m, "productId", "product_id", "_id", "pid")
		item.Name, _ = stringField(m, "product_name", "name")
		if qty, ok := numberField(m, "quantity", "qty"); ok {
			item.Quantity = int(qty)
		}
		if price, ok := numberField(m, "product_price", "price"); ok {
			item.Price = int64(math.Round(price))
		}
		items = append(items, item)
	}

	return items
}

// DecodeRestaurant maps one untyped restaurant object onto the domain entity.
func DecodeRestaurant(m map[string]any) (entity.Restaurant, error) {
	// Profile payloads sometimes nest the restaurant under an envelope key.
	if nested, ok := m["restaurant"].(map[string]any); ok {
		m = nested
	}

	id, ok := stringField(m, "_id", "id", "restaurant_id", "restaurantId")
	if !ok {
		return entity.Restaurant{}, domainerrors.ErrDecode.WrapMessage("restaurant id missing")
	}
	name, ok := stringField(m, "restaurant_Name", "restaurant_name", "name")
	if !ok {
		return entity.Restaurant{}, domainerrors.ErrDecode.WrapMessage("restaurant name missing for " + id)
	}

	restaurant := entity.Restaurant{ID: id, Name: name}
	restaurant.Address, _ = stringField(m, "address", "location")
	restaurant.Phone, _ = stringField(m, "phone", "phone_number")
	restaurant.Email, _ = stringField(m, "email")
	restaurant.Cuisine, _ = stringField(m, "cuisine", "cuisines")
	if estimated, ok := numberField(m, "estimatedTime", "estimated_time"); ok {
		restaurant.EstimatedTime = int(estimated)
	}

	return restaurant, nil
}

// DecodeSession maps a login response onto a session. The token is required;
// identifiers fall back through the usual chains.
func DecodeSession(raw []byte) (*entity.Session, error) {
	m, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	token, ok := stringField(m, "token", "access_token", "accessToken")
	if !ok {
		return nil, domainerrors.ErrDecode.WrapMessage("login response carries no token")
	}

	userID, ok := stringField(m, "id", "_id", "user_id", "userId")
	if !ok {
		if nested, nestedOK := m["user"].(map[string]any); nestedOK {
			userID, ok = stringField(nested, "_id", "id")
		}
	}
	if !ok {
		return nil, domainerrors.ErrDecode.WrapMessage("login response carries no user id")
	}

	return &entity.Session{
		Token:        token,
		UserID:       userID,
		RestaurantID: ResolveRestaurantID(m, userID),
	}, nil
}
