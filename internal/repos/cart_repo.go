package repos

import (
	"errors"

	"carshop/internal/domain"
	applog "carshop/internal/log"
	"carshop/internal/storage"
)

// CartRepo keeps one cart per browser session in the key/value store.
type CartRepo struct{ kv *storage.KV }

func NewCartRepo(kv *storage.KV) *CartRepo { return &CartRepo{kv: kv} }

func cartKey(sid string) string { return "cart:" + sid }

// Load returns the stored cart for sid. A value that no longer decodes is
// dropped and an empty cart is returned in its place.
func (r *CartRepo) Load(sid string) (domain.Cart, error) {
	cart := domain.Cart{}
	_, err := r.kv.GetJSON(cartKey(sid), &cart)
	var corrupt *storage.CorruptError
	if errors.As(err, &corrupt) {
		applog.Warn("cart.corrupt", map[string]any{"sid": sid, "err": corrupt.Err.Error()})
		return domain.Cart{}, r.kv.Remove(cartKey(sid))
	}
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = domain.Cart{}
	}
	return cart, nil
}

func (r *CartRepo) Save(sid string, cart domain.Cart) error {
	if cart == nil {
		cart = domain.Cart{}
	}
	return r.kv.SetJSON(cartKey(sid), cart)
}

func (r *CartRepo) Clear(sid string) error {
	return r.kv.Remove(cartKey(sid))
}
