package letter

import (
	"strings"

	"github.com/rpggio/lealogineo/internal/domain/credential"
)

// Style is the typographic role of a block.
type Style int

const (
	StyleBody Style = iota
	StyleHeading
	StyleValue
	StyleSpacer
)

// Block is one paragraph of letter text.
type Block struct {
	Style Style
	Text  string
}

// Compose returns the letter text for rec. The safe-password notes appear
// only for non-trainee accounts.
func Compose(rec credential.Record, head Letterhead) []Block {
	category := rec.Category()
	staff := category != credential.CategoryTrainee

	b := []Block{
		{StyleBody, "Sehr geehrte/r " + strings.TrimSpace(rec.GivenName()+" "+rec.Surname()) + ","},
		{StyleSpacer, ""},
		{StyleBody, "Mit diesem Schreiben erhalten Sie Informationen zum Anmeldeprozess in der ZfsL-Basis-IT-Infrastruktur, " +
			"die vom Nordrhein-Westfälischen Ministerium für Schule und Bildung für Lehramtsanwärter und Seminarausbilder " +
			"kostenlos zur Verfügung gestellt wird."},
		{StyleBody, "Für den Zugang zu unserer Plattform müssen Sie zunächst im oberen Feld Ihres Browsers die folgende URL eingeben:"},
		{StyleValue, "https://" + strings.TrimPrefix(head.PortalLink, "https://")},
		{StyleSpacer, ""},
		{StyleHeading, "Bitte beachten Sie folgende Hinweise:"},
		{StyleBody, "Der Zugriff erfolgt grundsätzlich nur mit zugewiesenen persönlichen Login-Daten einschließlich des Passwortes. " +
			"Jede Person ist verantwortlich für alle Aktionen, die mit ihren Zugangsdaten ausgeführt werden. " +
			"Gehen Sie deshalb sorgfältig mit Ihrer Zugangserkennung und Ihrem Passwort um."},
	}
	if staff {
		b = append(b, Block{StyleBody, "Nach Ihrer Erstanmeldung müssen sowohl das Zugangspasswort als auch das Passwort für den Bereich Safe geändert werden."})
	} else {
		b = append(b, Block{StyleBody, "Nach Ihrer Erstanmeldung muss das Zugangspasswort geändert werden."})
	}
	b = append(b,
		Block{StyleBody, "Die Nutzung der Plattform ist ausschließlich für dienstliche Zwecke gestattet."},
		Block{StyleBody, "Für die Nutzung der Basis-IT-Infrastruktur gelten die Nutzungsbedingungen, denen Sie direkt nach Ihrer " +
			"Erstanmeldung mit den hier mitgeteilten Zugangsdaten zustimmen müssen. Diese Nutzungsbedingungen sind später " +
			"im Bereich 'Mein Konto' einsehbar."},
		Block{StyleSpacer, ""},
		Block{StyleHeading, "Ihre Zugangsdaten zur ZfsL-LOGINEO NRW-Plattform finden Sie im Folgenden:"},
		Block{StyleBody, "Benutzername / E-Mail-Adresse:"},
	)
	for _, mail := range rec.Emails {
		mail = strings.TrimSpace(strings.ReplaceAll(mail, `"`, ""))
		if mail != "" {
			b = append(b, Block{StyleValue, mail})
		}
	}
	b = append(b,
		Block{StyleBody, "Login-Kennwort:"},
		Block{StyleValue, rec.Password()},
	)
	if staff && len(rec.SafePasswords) > 0 {
		b = append(b,
			Block{StyleBody, "Safe-Kennwort:"},
			Block{StyleValue, rec.SafePassword()},
		)
	}
	b = append(b,
		Block{StyleSpacer, ""},
		Block{StyleBody, "Tipps und Hinweise für sichere Kennwörter sowie Anleitungen, kleine Einführungsvideos und " +
			"Hilfestellungen für den Umgang mit LOGINEO NRW finden Sie im Netzwerk von LOGINEO NRW."},
		Block{StyleBody, "Bei Problemen mit Ihren Zugangsdaten wenden Sie sich bitte an Ihre:n LOGINEO-NRW-Administrator:in " +
			head.SupportName + " (" + head.SupportMail + ")."},
	)
	return b
}
