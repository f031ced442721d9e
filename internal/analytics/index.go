package analytics

import "github.com/tesseract-hub/property-service/internal/models"

// PropertyIndex resolves the name references held by tenants, work orders and
// transactions. Lookups are exact and case-sensitive.
type PropertyIndex struct {
	byName map[string]models.Property
}

// NewPropertyIndex builds the lookup table. When names collide the first property wins.
func NewPropertyIndex(properties []models.Property) *PropertyIndex {
	idx := &PropertyIndex{byName: make(map[string]models.Property, len(properties))}
	for _, p := range properties {
		if _, exists := idx.byName[p.Name]; !exists {
			idx.byName[p.Name] = p
		}
	}
	return idx
}

// Lookup returns the property with exactly this name
func (idx *PropertyIndex) Lookup(name string) (models.Property, bool) {
	p, ok := idx.byName[name]
	return p, ok
}

// CurrentTenantCounts counts current tenants per known property name.
// Tenants referencing unknown properties are skipped.
func (idx *PropertyIndex) CurrentTenantCounts(tenants []models.Tenant) map[string]int {
	counts := make(map[string]int, len(idx.byName))
	for _, t := range tenants {
		if t.Status != models.TenantStatusCurrent {
			continue
		}
		if _, ok := idx.byName[t.Property]; ok {
			counts[t.Property]++
		}
	}
	return counts
}

// TenantsOf returns the tenants referencing the named property, in input order
func TenantsOf(name string, tenants []models.Tenant) []models.Tenant {
	var out []models.Tenant
	for _, t := range tenants {
		if t.Property == name {
			out = append(out, t)
		}
	}
	return out
}
