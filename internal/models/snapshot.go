package models

// Collection names double as the persistence keys of each entity list
const (
	CollectionProperties   = "properties"
	CollectionTenants      = "tenants"
	CollectionWorkOrders   = "workOrders"
	CollectionTransactions = "transactions"
	CollectionDocuments    = "documents"
	CollectionApplications = "applications"
)

// Collections lists every entity collection in persistence order
var Collections = []string{
	CollectionProperties,
	CollectionTenants,
	CollectionWorkOrders,
	CollectionTransactions,
	CollectionDocuments,
	CollectionApplications,
}

// Snapshot is an immutable copy of every entity collection
type Snapshot struct {
	Properties   []Property    `json:"properties"`
	Tenants      []Tenant      `json:"tenants"`
	WorkOrders   []WorkOrder   `json:"workOrders"`
	Transactions []Transaction `json:"transactions"`
	Documents    []Document    `json:"documents"`
	Applications []Application `json:"applications"`
}

// Clone returns a copy whose slices share no backing arrays with s
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Properties:   append([]Property{}, s.Properties...),
		Tenants:      append([]Tenant{}, s.Tenants...),
		Transactions: append([]Transaction{}, s.Transactions...),
		Documents:    append([]Document{}, s.Documents...),
		Applications: append([]Application{}, s.Applications...),
	}
	out.WorkOrders = make([]WorkOrder, len(s.WorkOrders))
	for i, wo := range s.WorkOrders {
		if wo.DateCompleted != nil {
			completed := *wo.DateCompleted
			wo.DateCompleted = &completed
		}
		out.WorkOrders[i] = wo
	}
	return out
}
