package order

import "strings"

var pizzaCatalog = []string{
	"Margherita",
	"Pepperoni",
	"Vegetariana",
	"Four Cheese",
	"Diavola",
	"BBQ Chicken",
	"Hawaiian",
	"Paneer Tikka",
	"Vegan Delight",
}

var sizeCatalog = []string{"small", "medium", "large"}

// noneAnswers are the toppings answers meaning "no toppings".
var noneAnswers = map[string]struct{}{
	"no":      {},
	"none":    {},
	"nothing": {},
}

// PizzaCatalog returns the pizzas on the menu in declared order.
func PizzaCatalog() []string {
	return append([]string(nil), pizzaCatalog...)
}

// SizeCatalog returns the accepted sizes in declared order.
func SizeCatalog() []string {
	return append([]string(nil), sizeCatalog...)
}

func inCatalog(catalog []string, value string) bool {
	for _, entry := range catalog {
		if entry == value {
			return true
		}
	}
	return false
}

// joinOr renders "a, b, or c".
func joinOr(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	case 2:
		return values[0] + " or " + values[1]
	}
	return strings.Join(values[:len(values)-1], ", ") + ", or " + values[len(values)-1]
}
