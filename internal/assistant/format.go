package assistant

import (
	"fmt"
	"strings"

	"agendai/internal/models"
)

const helpReply = `Posso aiutarti a organizzare il calendario. Prova con:
- "aggiungi riunione domani alle 15"
- "vorrei fare 30 minuti di corsa al giorno per 2 settimane"
- "quali sono i miei giorni liberi?"
- "quando posso inserire un allenamento di 45 minuti?"
- "elimina riunione" oppure "elimina tutti gli eventi"
- "cerca palestra"
- "come va la settimana?"`

// displayDate turns YYYY-MM-DD into the DD/MM form used in replies. Malformed
// dates pass through untouched.
func displayDate(date string) string {
	if len(date) != 10 {
		return date
	}
	return date[8:10] + "/" + date[5:7]
}

// hoursLabel renders minutes as hours with one decimal, e.g. "1.5h".
func hoursLabel(minutes int) string {
	return fmt.Sprintf("%.1fh", float64(minutes)/60)
}

// routinePreview lists the proposed slots, capped at seven shown entries,
// and asks for confirmation.
func routinePreview(p *models.PendingRoutine) string {
	const maxShown = 7
	var b strings.Builder
	fmt.Fprintf(&b, "Posso programmare \"%s\" (%d minuti) in %d giorni:\n",
		p.Activity, p.DurationMinutes, len(p.Slots))
	for i, slot := range p.Slots {
		if i == maxShown {
			fmt.Fprintf(&b, "… e altri %d giorni\n", len(p.Slots)-maxShown)
			break
		}
		fmt.Fprintf(&b, "%d. %s %s-%s\n", i+1, displayDate(slot.Date), slot.Start, slot.End)
	}
	b.WriteString("Confermi? Rispondi \"sì\" per creare gli eventi o \"no\" per annullare.")
	return b.String()
}

// sliceOriginal maps a byte range of the normalized message back onto the
// original text, preserving its casing and accents. Normalization is
// rune-for-rune, so rune offsets line up even though byte offsets may not.
func sliceOriginal(original, normalized string, start, end int) string {
	startRunes := len([]rune(normalized[:start]))
	endRunes := len([]rune(normalized[:end]))
	origRunes := []rune(original)
	if endRunes > len(origRunes) {
		endRunes = len(origRunes)
	}
	if startRunes > endRunes {
		startRunes = endRunes
	}
	return string(origRunes[startRunes:endRunes])
}
