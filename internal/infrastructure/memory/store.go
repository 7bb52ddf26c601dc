// Package memory implementa los puertos de persistencia en memoria.
//
// Cada escritura se registra como una operación (check + apply). Fuera de una transacción
// se valida y aplica de inmediato bajo el lock de escritura del Store; dentro de una
// transacción (TxRunner) se acumula y se valida/aplica toda junta en el Commit, así ningún
// lector ve un débito sin su crédito.
//
// Los bloqueos por clave (GetForUpdate) se toman en este orden:
// movimiento -> producto -> entradas del ledger (ordenadas por área).
package memory

import (
	"sort"
	"sync"

	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

// Store tablas en memoria compartidas por todos los repositorios.
type Store struct {
	mu         sync.RWMutex
	categories map[string]entity.Category
	suppliers  map[string]entity.Supplier
	areas      map[string]entity.StorageArea
	products   map[string]entity.Product
	users      map[string]entity.User
	stock      map[entity.StockKey]entity.Stock
	movements  map[string]entity.Movement

	locks *keyLocks
}

// NewStore crea un store vacío. Los datos iniciales se cargan aparte (seed.Seeder).
func NewStore() *Store {
	return &Store{
		categories: make(map[string]entity.Category),
		suppliers:  make(map[string]entity.Supplier),
		areas:      make(map[string]entity.StorageArea),
		products:   make(map[string]entity.Product),
		users:      make(map[string]entity.User),
		stock:      make(map[entity.StockKey]entity.Stock),
		movements:  make(map[string]entity.Movement),
		locks:      newKeyLocks(),
	}
}

// op escritura diferida: check corre contra el estado confirmado, apply nunca falla.
type op struct {
	check func(s *Store) error
	apply func(s *Store)
}

// exec aplica o dentro de u, o de inmediato si u es nil.
func (s *Store) exec(u *unitOfWork, o op) error {
	if u != nil {
		if o.check != nil {
			s.mu.RLock()
			err := o.check(s)
			s.mu.RUnlock()
			if err != nil {
				return err
			}
		}
		u.ops = append(u.ops, o)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if o.check != nil {
		if err := o.check(s); err != nil {
			return err
		}
	}
	o.apply(s)
	return nil
}

// unitOfWork transacción en memoria: escrituras pendientes + bloqueos por clave.
type unitOfWork struct {
	s         *Store
	ops       []op
	held      map[string]struct{}
	unlockers []func()

	// escrituras pendientes visibles para las lecturas de la propia tx
	stock     map[entity.StockKey]entity.Stock
	movements map[string]entity.Movement
}

func (s *Store) begin() *unitOfWork {
	return &unitOfWork{
		s:         s,
		held:      make(map[string]struct{}),
		stock:     make(map[entity.StockKey]entity.Stock),
		movements: make(map[string]entity.Movement),
	}
}

// lock toma el bloqueo exclusivo de key hasta release. Reentrante dentro de la misma tx.
func (u *unitOfWork) lock(key string) {
	if _, ok := u.held[key]; ok {
		return
	}
	u.unlockers = append(u.unlockers, u.s.locks.lock(key))
	u.held[key] = struct{}{}
}

// commit valida todas las operaciones y, si ninguna falla, las aplica en bloque.
func (u *unitOfWork) commit() error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, o := range u.ops {
		if o.check == nil {
			continue
		}
		if err := o.check(u.s); err != nil {
			return err
		}
	}
	for _, o := range u.ops {
		o.apply(u.s)
	}
	return nil
}

func (u *unitOfWork) release() {
	for i := len(u.unlockers) - 1; i >= 0; i-- {
		u.unlockers[i]()
	}
	u.unlockers = nil
	u.held = nil
}

// keyLocks mutex por clave con conteo de referencias; la entrada se elimina al quedar libre.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*keyLock)}
}

func (l *keyLocks) lock(key string) (unlock func()) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	kl.mu.Lock()
	return func() {
		kl.mu.Unlock()
		l.mu.Lock()
		kl.refs--
		if kl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// size número de claves con bloqueo tomado o en espera.
func (l *keyLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func sameRef(p *string, id string) bool {
	return p != nil && *p == id
}

func sortByID[T any](items []*T, id func(*T) string) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}

// notFoundUnless devuelve NotFoundError si ok es falso.
func notFoundUnless(ok bool, entity, id string) error {
	if ok {
		return nil
	}
	return domain.NewNotFound(entity, id)
}
