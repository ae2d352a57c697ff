package benchmark

import (
	"fmt"
	"strings"
)

// Deterministic string generators using simple hash functions
func generateName(i int) string {
	firstNames := []string{"Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Henry", "Ivy", "Jack"}
	lastNames := []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	return firstNames[i%len(firstNames)] + " " + lastNames[(i*7)%len(lastNames)]
}

func generateCity(i int) string {
	cities := []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio", "San Diego", "Dallas", "Austin"}
	return cities[i%len(cities)]
}

func generateCountry(i int) string {
	countries := []string{"USA", "Canada", "UK", "Germany", "France", "Australia", "Japan", "Brazil", "India", "Mexico"}
	return countries[i%len(countries)]
}

func generateTheme(i int) string {
	themes := []string{"light", "dark", "system", "custom"}
	return themes[i%len(themes)]
}

// GenerateUsersJSON creates a document with the specified number of users.
// Bios carry quotes and newlines so double escaping has work to do.
func GenerateUsersJSON(count int) []byte {
	var sb strings.Builder
	sb.Grow(count * 350)

	sb.WriteString(`{"users":[`)
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"id":%d,"name":"%s","email":"user%d@example.com","age":%d,"active":%t,"score":%.2f,"profile":{"bio":"User %d says \"hello\"\nand more","address":{"street":"%d Main Street","city":"%s","country":"%s","zip":"%05d"}},"settings":{"theme":"%s","tags":["a%d","b%d"]}}`,
			i,
			generateName(i),
			i,
			18+(i%62),
			i%3 != 0,
			float64(50+(i%50))+float64(i%100)/100.0,
			i,
			100+(i%900),
			generateCity(i),
			generateCountry(i),
			10000+(i%90000),
			generateTheme(i),
			i, i,
		)
	}
	sb.WriteString(`]}`)
	return []byte(sb.String())
}

// TemplatePath is one placeholder used by GenerateTemplate.
type TemplatePath struct {
	Path   string
	Double bool
}

// GenerateTemplate creates a JSON request body of roughly size bytes that
// references fields of a GenerateUsersJSON(users) document, along with the
// placeholders it contains.
func GenerateTemplate(users, size int) ([]byte, []TemplatePath) {
	var (
		sb    strings.Builder
		paths []TemplatePath
	)
	sb.Grow(size + 256)
	sb.WriteString(`{"items":[`)
	for i := 0; sb.Len() < size; i++ {
		u := (i * 7919) % users
		if i > 0 {
			sb.WriteString(",")
		}
		p := []TemplatePath{
			{Path: fmt.Sprintf("users.%d.name", u)},
			{Path: fmt.Sprintf("users.%d.profile.address", u)},
			{Path: fmt.Sprintf("users.%d.profile.bio", u), Double: true},
			{Path: fmt.Sprintf("users.%d.settings.tags.1", u)},
		}
		fmt.Fprintf(&sb, `{"who":"{$%s}","where":{$%s},"bio":"{$$%s}","tag":"{$%s}","padding":"lorem ipsum dolor sit amet"}`,
			p[0].Path, p[1].Path, p[2].Path, p[3].Path)
		paths = append(paths, p...)
	}
	sb.WriteString(`]}`)
	return []byte(sb.String()), paths
}

// DataSizeInfo holds information about generated data sizes
type DataSizeInfo struct {
	Bytes       int
	KB          float64
	MB          float64
	Description string
}

// GetDataSizeInfo returns size information for the given data
func GetDataSizeInfo(data []byte) DataSizeInfo {
	bytes := len(data)
	kb := float64(bytes) / 1024
	mb := kb / 1024

	info := DataSizeInfo{Bytes: bytes, KB: kb, MB: mb}
	if mb >= 1 {
		info.Description = fmt.Sprintf("%.2f MB", mb)
	} else {
		info.Description = fmt.Sprintf("%.2f KB", kb)
	}
	return info
}
