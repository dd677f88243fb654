package family

// Seed returns the directory the hub ships with.
//
// Arthur and Martha are both listed without a parent, so the roster does
// not form a single tree: the lineage engine reports multiple roots for it.
// Use [SeedSingleRoot] for a roster that lays out.
func Seed() []Member {
	return []Member{
		{ID: "1", Name: "Arthur Keelapavoor", Relation: "Patriarch", BirthDate: "1940-05-12", PhotoURL: "https://picsum.photos/150/150?random=1", Location: "Keelapavoor, TN", Phone: "555-0101", Email: "arthur@fam.com", Bio: "The rock of the family. Loves traditional farming."},
		{ID: "2", Name: "Martha Keelapavoor", Relation: "Matriarch", BirthDate: "1942-08-23", PhotoURL: "https://picsum.photos/150/150?random=2", Location: "Keelapavoor, TN", Phone: "555-0102", Email: "martha@fam.com", Bio: "Makes the best sweets in the village."},
		{ID: "3", Name: "John Keelapavoor", Relation: "Son", BirthDate: "1965-03-10", PhotoURL: "https://picsum.photos/150/150?random=3", Location: "Chennai, TN", Phone: "555-0103", Email: "john@fam.com", ParentID: "1"},
		{ID: "4", Name: "Sarah Raja", Relation: "Daughter", BirthDate: "1968-11-05", PhotoURL: "https://picsum.photos/150/150?random=4", Location: "Bangalore, KA", Phone: "555-0104", Email: "sarah@fam.com", ParentID: "1"},
		{ID: "5", Name: "Jack Keelapavoor", Relation: "Grandson", BirthDate: "1995-07-20", PhotoURL: "https://picsum.photos/150/150?random=5", Location: "San Francisco, CA", Phone: "555-0105", Email: "jack@fam.com", ParentID: "3"},
		{ID: "6", Name: "Emily Raja", Relation: "Granddaughter", BirthDate: "1998-02-14", PhotoURL: "https://picsum.photos/150/150?random=6", Location: "New York, NY", Phone: "555-0106", Email: "emily@fam.com", ParentID: "4"},
	}
}

// SeedSingleRoot returns the seed roster without Martha, leaving Arthur as
// the only root.
func SeedSingleRoot() []Member {
	seed := Seed()
	out := make([]Member, 0, len(seed)-1)
	for _, m := range seed {
		if m.ID != "2" {
			out = append(out, m)
		}
	}
	return out
}
