/*
Package reference provides read-only lookup of static airline, aircraft and airport data.

The tables are loaded once (from the embedded dataset or a YAML file) and indexed in
memory. An Index is never mutated after construction and is safe for concurrent reads.

# Resolution Policy

Every lookup follows the same order:

 1. exact, case-insensitive match on the canonical code (IATA, or ICAO where present)
 2. exact, case-insensitive match on the canonical name
 3. substring containment between query and name, in either direction
 4. unresolved

Substring matching only applies to queries of at least SubstringMinLength characters and
walks the table in file order, so the first listed entry wins. Callers that need to know
which rule fired use the Match* methods; the Resolve* methods only report success.

For display, AirlineCode returns the original input unchanged when nothing resolves.

# Basic Usage

	idx := reference.Default()
	if ap, ok := idx.ResolveAirport("den"); ok {
	    fmt.Println(ap.Name, ap.City)
	}

	tables, err := reference.LoadTables("/etc/flight-normalizer/reference.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	custom := reference.NewIndex(tables, reference.WithSubstringMinLength(4))
*/
package reference
