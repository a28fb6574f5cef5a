// Package greeting produces the congratulation message shown after a
// draw. Messages come from a fixed Polish template pool with the
// client and exhibitor names substituted in.
package greeting

import (
	"math/rand"
	"strings"

	"github.com/targihasta/fair-lottery/internal/model"
)

// fallbackExhibitor stands in when the winning order carries no
// exhibitor attribution (admin-entered or legacy orders).
const fallbackExhibitor = "Dostawca"

var templates = []string{
	"Gratulacje dla firmy {client}! Wasze zamówienie u wystawcy {exhibitor} przyniosło Wam szczęście!",
	"Mamy zwycięzcę! {client} wygrywa nagrodę dzięki współpracy z {exhibitor}!",
	"Fantastyczna wiadomość dla {client}! Bilet od {exhibitor} okazał się tym szczęśliwym!",
	"Wielkie brawa dla {client}! Dziękujemy za zaufanie okazane firmie {exhibitor}!",
	"To jest Wasz dzień! {client} wygrywa losowanie! Podziękowania dla stoiska {exhibitor}.",
	"Ależ emocje! Zwycięża {client}. Udana transakcja z {exhibitor} procentuje!",
	"Szczęście uśmiechnęło się do firmy {client}! Gratulujemy świetnego wyboru dostawcy: {exhibitor}!",
	"Brawa! {client} zgarnia nagrodę. Dziękujemy za zamówienie złożone u {exhibitor}.",
	"Zwycięstwo! {client} - ten dzień należy do Was! Partnerstwo z {exhibitor} to strzał w dziesiątkę.",
	"Mamy to! {client} wygrywa nagrodę główną. Gratulacje dla wystawcy {exhibitor} za skuteczność!",
	"Niesamowite szczęście firmy {client}! Zamówienie u {exhibitor} okazało się przepustką do nagrody.",
	"Halo Targi! Zwycięża {client}! Dziękujemy wystawcy {exhibitor} za udział w sukcesie.",
	"Co za niespodzianka! Firma {client} dołącza do grona zwycięzców dzięki {exhibitor}!",
	"Los uśmiechnął się do {client}. Dziękujemy za wizytę na stoisku {exhibitor}!",
	"Mamy werdykt! Nagroda wędruje do {client}. Brawo dla wystawcy {exhibitor}!",
	"Targowy sukces! {client} wygrywa w wielkim stylu. Transakcja z {exhibitor} się opłaciła.",
	"Idealny wybór! {client} postawił na {exhibitor} i wygrał nagrodę!",
	"To musi być dobry dzień dla {client}! Gratulujemy wygranej i współpracy z {exhibitor}.",
	"Znakomity strzał! {client} wygrywa. Pozdrawiamy ekipę ze stoiska {exhibitor}.",
	"Wielka wygrana dla {client}! Dziękujemy, że jesteście z nami i z firmą {exhibitor}.",
}

// ForWinner renders a random congratulation template for the winning
// order.
func ForWinner(winner model.Order) string {
	return render(templates[rand.Intn(len(templates))], winner)
}

func render(tpl string, winner model.Order) string {
	exhibitor := winner.CreatedBy
	if exhibitor == "" {
		exhibitor = fallbackExhibitor
	}
	msg := strings.ReplaceAll(tpl, "{client}", winner.ClientName)
	return strings.ReplaceAll(msg, "{exhibitor}", exhibitor)
}
