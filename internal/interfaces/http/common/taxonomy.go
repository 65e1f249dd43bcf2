package common

import (
	"fmt"
	"strings"
)

// Category is one browsable directory category. IconName is the identifier
// the interface maps to its icon set.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IconName string `json:"iconName"`
	Slug     string `json:"slug"`
}

// Categories lists every browsable category in display order.
var Categories = []Category{
	{ID: "1", Name: "Gastronomía", IconName: "Utensils", Slug: "gastronomia"},
	{ID: "2", Name: "Hotelería y Turismo", IconName: "Hotel", Slug: "hoteleria"},
	{ID: "3", Name: "Automotriz", IconName: "Car", Slug: "automotriz"},
	{ID: "4", Name: "Salud y Farmacias", IconName: "HeartPulse", Slug: "salud"},
	{ID: "5", Name: "Servicios Profesionales", IconName: "Briefcase", Slug: "servicios"},
	{ID: "6", Name: "Compras y Moda", IconName: "ShoppingBag", Slug: "compras"},
	{ID: "7", Name: "Construcción y Hogar", IconName: "Hammer", Slug: "construccion"},
	{ID: "8", Name: "Tecnología", IconName: "Laptop", Slug: "tecnologia"},
	{ID: "9", Name: "Educación", IconName: "GraduationCap", Slug: "educacion"},
	{ID: "10", Name: "Eventos", IconName: "PartyPopper", Slug: "eventos"},
}

// Departments lists the seventeen departments plus the capital district.
var Departments = []string{
	"Asunción (Distrito Capital)",
	"Concepción",
	"San Pedro",
	"Cordillera",
	"Guairá",
	"Caaguazú",
	"Caazapá",
	"Itapúa",
	"Misiones",
	"Paraguarí",
	"Alto Paraná",
	"Central",
	"Ñeembucú",
	"Amambay",
	"Canindeyú",
	"Presidente Hayes",
	"Boquerón",
	"Alto Paraguay",
}

var (
	categoryNameSet = makeStringSet(categoryNames())
	departmentSet   = makeStringSet(Departments)
	categoryBySlug  = makeCategoryIndex()
)

func categoryNames() []string {
	names := make([]string, 0, len(Categories))
	for _, c := range Categories {
		names = append(names, c.Name)
	}
	return names
}

func makeStringSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		set[item] = struct{}{}
	}
	return set
}

func makeCategoryIndex() map[string]Category {
	index := make(map[string]Category, len(Categories))
	for _, c := range Categories {
		index[c.Slug] = c
	}
	return index
}

// CategoryBySlug resolves a slug to its category.
func CategoryBySlug(slug string) (Category, bool) {
	c, ok := categoryBySlug[strings.TrimSpace(strings.ToLower(slug))]
	return c, ok
}

// NormalizeCategory validates a category display name.
func NormalizeCategory(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if c, ok := CategoryBySlug(value); ok {
		return c.Name, nil
	}
	if _, ok := categoryNameSet[value]; !ok {
		return "", fmt.Errorf("Categoría desconocida: %s", value)
	}
	return value, nil
}

// NormalizeDepartment validates a department name.
func NormalizeDepartment(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if _, ok := departmentSet[value]; !ok {
		return "", fmt.Errorf("Departamento desconocido: %s", value)
	}
	return value, nil
}

// NormalizeTags trims and de-duplicates free-form tags.
func NormalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{})
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, tag)
	}
	return result
}
