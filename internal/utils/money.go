package utils

import "fmt"

// FormatEuros affiche un montant en centimes au format humain ("12.99€").
// L'arithmétique reste entière partout, seul l'affichage divise.
func FormatEuros(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d€", sign, cents/100, cents%100)
}
