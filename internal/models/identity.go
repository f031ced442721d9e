package models

// ID accessors let the entity store handle every collection the same way

func (p *Property) GetID() string {
	return p.ID
}

func (p *Property) SetID(id string) {
	p.ID = id
}

func (t *Tenant) GetID() string {
	return t.ID
}

func (t *Tenant) SetID(id string) {
	t.ID = id
}

func (w *WorkOrder) GetID() string {
	return w.ID
}

func (w *WorkOrder) SetID(id string) {
	w.ID = id
}

func (t *Transaction) GetID() string {
	return t.ID
}

func (t *Transaction) SetID(id string) {
	t.ID = id
}

func (d *Document) GetID() string {
	return d.ID
}

func (d *Document) SetID(id string) {
	d.ID = id
}

func (a *Application) GetID() string {
	return a.ID
}

func (a *Application) SetID(id string) {
	a.ID = id
}
