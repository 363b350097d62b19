package scoring

// entry guarda los puntos por game y, aparte, el total cacheado (nil = stale).
type entry struct {
	games map[int64]float64
	total *float64
}

// Cache memoiza puntos por (atleta, game) y el total por atleta.
// Los puntos de un game son inmutables una vez final, así que Invalidate
// sólo descarta totales. Sin locks: el llamador serializa.
type Cache struct {
	athletes map[int64]*entry

	hits, misses, invalidations uint64
}

func NewCache() *Cache {
	return &Cache{athletes: make(map[int64]*entry)}
}

// Store hace upsert del valor del game; no marca el total como stale.
// Después de un lote de datos nuevos hay que llamar a Invalidate.
func (c *Cache) Store(athleteID, gameID int64, value float64) {
	e, ok := c.athletes[athleteID]
	if !ok {
		e = &entry{games: make(map[int64]float64)}
		c.athletes[athleteID] = e
	}
	e.games[gameID] = value
}

// Retrieve devuelve el valor guardado para (atleta, game).
func (c *Cache) Retrieve(athleteID, gameID int64) (float64, bool) {
	e, ok := c.athletes[athleteID]
	if !ok {
		return 0, false
	}
	v, ok := e.games[gameID]
	return v, ok
}

// RetrieveAll devuelve una copia del mapa game → puntos del atleta.
func (c *Cache) RetrieveAll(athleteID int64) (map[int64]float64, bool) {
	e, ok := c.athletes[athleteID]
	if !ok {
		return nil, false
	}
	out := make(map[int64]float64, len(e.games))
	for k, v := range e.games {
		out[k] = v
	}
	return out, true
}

// RetrieveTotal devuelve el total si está fresco; si no, lo recalcula de los games.
// Atleta desconocido → 0.
func (c *Cache) RetrieveTotal(athleteID int64) float64 {
	e, ok := c.athletes[athleteID]
	if !ok {
		return 0
	}
	if e.total != nil {
		c.hits++
		return *e.total
	}
	c.misses++
	var sum float64
	for _, v := range e.games {
		sum += v
	}
	t := Round1(sum)
	e.total = &t
	return t
}

// Invalidate marca stale el total de todos los atletas conocidos.
func (c *Cache) Invalidate() {
	c.invalidations++
	for _, e := range c.athletes {
		e.total = nil
	}
}

// Has reporta si el atleta tiene alguna entrada.
func (c *Cache) Has(athleteID int64) bool {
	_, ok := c.athletes[athleteID]
	return ok
}

func (c *Cache) Len() int { return len(c.athletes) }

type Stats struct {
	Athletes      int
	Hits          uint64
	Misses        uint64
	Invalidations uint64
}

func (c *Cache) Stats() Stats {
	return Stats{Athletes: len(c.athletes), Hits: c.hits, Misses: c.misses, Invalidations: c.invalidations}
}
