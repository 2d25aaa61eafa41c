package game

import (
	"math/rand/v2"
	"sync"
)

const (
	roomIdAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	roomIdLength   = 6
)

// Idgen hands out short room codes that are unique among live rooms.
type Idgen struct {
	ids    map[string]struct{}
	locker sync.Mutex
	intn   func(n int) int
}

func NewIdGen() *Idgen {
	return &Idgen{
		ids:  make(map[string]struct{}),
		intn: rand.IntN,
	}
}

func (idgen *Idgen) Generate() string {
	idgen.locker.Lock()
	defer idgen.locker.Unlock()

	buf := make([]byte, roomIdLength)
	for {
		for i := range buf {
			buf[i] = roomIdAlphabet[idgen.intn(len(roomIdAlphabet))]
		}
		id := string(buf)
		if _, taken := idgen.ids[id]; !taken {
			idgen.ids[id] = struct{}{}
			return id
		}
	}
}

func (idgen *Idgen) Dispose(id string) {
	idgen.locker.Lock()
	delete(idgen.ids, id)
	idgen.locker.Unlock()
}
