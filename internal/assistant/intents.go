package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"agendai/internal/availability"
	"agendai/internal/dateutil"
	"agendai/internal/models"
	"agendai/internal/parser"
)

var (
	addTriggerRx = regexp.MustCompile(`(aggiungi|inserisci|crea evento)\s*`)
	dayMonthRx   = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?`)
	eventTimeRx  = regexp.MustCompile(`alle\s+(\d{1,2})(?::(\d{2}))?(?:\s*-\s*(\d{1,2})(?::(\d{2}))?)?`)
	durationRx   = regexp.MustCompile(`(\d+)\s*(ore|ora|minuti|minuto|min)\b`)
	periodRx     = regexp.MustCompile(`(\d+)\s*(giorni|giorno|settimane|settimana|mesi|mese)\b`)
	desireRx     = regexp.MustCompile(`\b(voglio|vorrei|devo)\b`)
)

// titleMarkers end the free-text title of a new event.
var titleMarkers = []string{"dopodomani", "domani", "oggi", "alle", "dalle"}

// addEventIntent creates one manual event from phrases like
// "aggiungi riunione domani alle 15".
func addEventIntent(norm, raw string, ctx Context) (Result, bool) {
	trigger := addTriggerRx.FindStringIndex(norm)
	if trigger == nil {
		return Result{}, false
	}

	rest := norm[trigger[1]:]
	boundary := len(rest)
	for _, marker := range titleMarkers {
		if idx := strings.Index(rest, marker); idx >= 0 && idx < boundary {
			boundary = idx
		}
	}
	if loc := dayMonthRx.FindStringIndex(rest); loc != nil && loc[0] < boundary {
		boundary = loc[0]
	}

	title := strings.TrimSpace(sliceOriginal(raw, norm, trigger[1], trigger[1]+boundary))
	title = strings.TrimSpace(strings.TrimPrefix(title, "evento "))
	title = trimTrailingArticles(title)
	if title == "" {
		return Result{
			Reply:   "Per aggiungere un evento dimmi cosa e quando, ad esempio: \"aggiungi riunione domani alle 15\".",
			Pending: ctx.Pending,
		}, true
	}

	date := resolveEventDate(norm, ctx)

	var startTime, endTime string
	if m := eventTimeRx.FindStringSubmatch(norm); m != nil {
		startTime = parser.ClockString(m[1], m[2])
		if m[3] != "" {
			endTime = parser.ClockString(m[3], m[4])
		}
	}

	event := models.Event{
		ID:        uuid.New().String(),
		Title:     title,
		Category:  parser.InferCategory(norm),
		Date:      date,
		Time:      startTime,
		EndTime:   endTime,
		Reminders: ctx.Reminders,
	}

	reply := fmt.Sprintf("Ho aggiunto \"%s\" per %s", title, displayDate(date))
	if startTime != "" {
		reply += " alle " + startTime
		if endTime != "" {
			reply += "-" + endTime
		}
	}
	reply += fmt.Sprintf(" (%s).", event.Category)

	return Result{
		Reply:    reply,
		Mutation: &Mutation{Append: []models.Event{event}},
		Pending:  ctx.Pending,
	}, true
}

// trimTrailingArticles drops articles and prepositions left dangling between
// the title and a date marker ("cena il 20/03" titles as "cena").
func trimTrailingArticles(title string) string {
	articles := map[string]bool{
		"il": true, "lo": true, "la": true, "l": true, "i": true, "gli": true,
		"le": true, "per": true, "del": true, "di": true, "al": true, "un": true, "una": true,
	}
	words := strings.Fields(title)
	for len(words) > 0 && articles[strings.ToLower(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// resolveEventDate picks the target date of a new event: today/tomorrow/day
// after tomorrow keywords win over an explicit d/m pattern, which wins over
// defaulting to today. Digits inside the time expression are not a date:
// "alle 20-22" is a time range, so its "20-22" must never parse as day/month.
func resolveEventDate(norm string, ctx Context) string {
	today := dateutil.Midnight(ctx.now())
	switch {
	case strings.Contains(norm, "dopodomani"):
		return dateutil.FormatDate(dateutil.AddDays(today, 2))
	case strings.Contains(norm, "domani"):
		return dateutil.FormatDate(dateutil.AddDays(today, 1))
	case strings.Contains(norm, "oggi"):
		return dateutil.FormatDate(today)
	}

	timeSpan := eventTimeRx.FindStringIndex(norm)
	for _, loc := range dayMonthRx.FindAllStringSubmatchIndex(norm, -1) {
		if timeSpan != nil && loc[0] >= timeSpan[0] && loc[1] <= timeSpan[1] {
			continue
		}
		day, _ := strconv.Atoi(norm[loc[2]:loc[3]])
		month, _ := strconv.Atoi(norm[loc[4]:loc[5]])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			continue
		}
		year := ""
		if loc[6] >= 0 {
			year = norm[loc[6]:loc[7]]
		}
		return parser.AbsoluteDate(norm[loc[2]:loc[3]], norm[loc[4]:loc[5]], year, today.Year())
	}
	return dateutil.FormatDate(today)
}

// routineProposalIntent reacts to a desire verb plus a per-day duration
// ("vorrei fare 30 minuti di corsa al giorno per 2 settimane"): it books
// nothing yet, but proposes the first sufficient free slot of each day and
// waits for confirmation.
func routineProposalIntent(norm, raw string, ctx Context) (Result, bool) {
	if !desireRx.MatchString(norm) {
		return Result{}, false
	}
	durMatch := durationRx.FindStringSubmatchIndex(norm)
	if durMatch == nil {
		return Result{}, false
	}

	minutes := routineMinutes(norm, durMatch)
	days := routinePeriodDays(norm)
	activity := routineActivity(norm, durMatch)

	workStart, workEnd := ctx.window()
	today := dateutil.Midnight(ctx.now())

	var slots []models.ProposedSlot
	for i := 0; i < days; i++ {
		date := dateutil.FormatDate(dateutil.AddDays(today, i))
		free := availability.FreeSlots(ctx.eventsOn(date), workStart, workEnd)
		slot, ok := availability.FirstSlotAtLeast(free, minutes)
		if !ok {
			continue
		}
		start, _ := dateutil.ParseClock(slot.Start)
		slots = append(slots, models.ProposedSlot{
			Date:  date,
			Start: slot.Start,
			End:   dateutil.FormatClock(start + minutes),
		})
	}

	if len(slots) == 0 {
		return Result{
			Reply: fmt.Sprintf(
				"Non ho trovato nessuno spazio di %d minuti nei prossimi %d giorni. Prova con una durata più corta o libera qualche impegno.",
				minutes, days),
		}, true
	}

	pending := &models.PendingRoutine{
		Activity:        activity,
		Category:        parser.InferCategory(norm),
		DurationMinutes: minutes,
		Days:            days,
		Slots:           slots,
	}
	return Result{
		Reply:   routinePreview(pending),
		Pending: pending,
	}, true
}

func routineMinutes(norm string, durMatch []int) int {
	value, _ := strconv.Atoi(norm[durMatch[2]:durMatch[3]])
	unit := norm[durMatch[4]:durMatch[5]]
	if strings.HasPrefix(unit, "or") {
		return value * 60
	}
	return value
}

func routinePeriodDays(norm string) int {
	m := periodRx.FindStringSubmatch(norm)
	if m == nil {
		return 7
	}
	value, _ := strconv.Atoi(m[1])
	switch {
	case strings.HasPrefix(m[2], "settiman"):
		return value * 7
	case strings.HasPrefix(m[2], "mes"):
		return value * 30
	default:
		return value
	}
}

// routineActivity strips the desire verb, the duration expression and filler
// words, keeping what remains as the activity name.
var routineFiller = map[string]bool{
	"voglio": true, "vorrei": true, "devo": true, "fare": true, "di": true,
	"al": true, "giorno": true, "ogni": true, "per": true, "un": true,
	"una": true, "la": true, "il": true, "lo": true, "alla": true,
	"giorni": true, "settimana": true, "settimane": true, "mese": true,
	"mesi": true, "prossimi": true, "prossima": true, "nei": true, "nel": true,
}

func routineActivity(norm string, durMatch []int) string {
	stripped := norm[:durMatch[0]] + " " + norm[durMatch[1]:]
	if m := periodRx.FindStringIndex(stripped); m != nil {
		stripped = stripped[:m[0]] + " " + stripped[m[1]:]
	}

	var kept []string
	for _, tok := range strings.Fields(stripped) {
		if !routineFiller[tok] {
			kept = append(kept, tok)
		}
	}
	if len(kept) == 0 {
		return "attività"
	}
	return strings.Join(kept, " ")
}

var (
	affirmativeTokens = map[string]bool{"si": true, "conferma": true, "ok": true, "vai": true}
	negativeTokens    = map[string]bool{"no": true, "annulla": true, "cancella": true}
)

// routineConfirmIntent resolves a pending routine proposal. Only reachable
// while one exists.
func routineConfirmIntent(norm, raw string, ctx Context) (Result, bool) {
	if ctx.Pending == nil {
		return Result{}, false
	}

	affirmative, negative := false, false
	for _, tok := range strings.Fields(norm) {
		tok = strings.Trim(tok, ".,!?;:")
		if affirmativeTokens[tok] {
			affirmative = true
		}
		if negativeTokens[tok] {
			negative = true
		}
	}

	switch {
	case negative:
		return Result{Reply: "Va bene, ho annullato la proposta. Nessun evento creato."}, true
	case affirmative:
		pending := ctx.Pending
		events := make([]models.Event, 0, len(pending.Slots))
		for _, slot := range pending.Slots {
			events = append(events, models.Event{
				ID:        uuid.New().String(),
				Title:     pending.Activity,
				Category:  pending.Category,
				Date:      slot.Date,
				Time:      slot.Start,
				EndTime:   slot.End,
				Reminders: ctx.Reminders,
			})
		}
		return Result{
			Reply:    fmt.Sprintf("Fatto! Ho creato %d eventi per \"%s\".", len(events), pending.Activity),
			Mutation: &Mutation{Append: events},
		}, true
	}
	return Result{}, false
}

var deleteStopWords = map[string]bool{
	"elimina": true, "rimuovi": true, "cancella": true, "evento": true,
	"eventi": true, "il": true, "lo": true, "la": true, "gli": true,
	"i": true, "le": true, "l": true, "tutti": true, "tutte": true,
	"del": true, "della": true, "di": true, "da": true, "mio": true,
	"miei": true, "un": true, "una": true,
}

// deleteIntent removes manual events, either all of them ("elimina tutti gli
// eventi") or the ones whose title contains the remaining search term.
// Habit-derived events are never touched: they only disappear with the habit.
func deleteIntent(norm, raw string, ctx Context) (Result, bool) {
	if !strings.Contains(norm, "elimina") && !strings.Contains(norm, "rimuovi") && !strings.Contains(norm, "cancella") {
		return Result{}, false
	}

	manual := ctx.manualEvents()

	if strings.Contains(norm, "tutti gli eventi") {
		if len(manual) == 0 {
			return Result{Reply: "Non ci sono eventi da eliminare.", Pending: ctx.Pending}, true
		}
		ids := make([]string, 0, len(manual))
		for _, e := range manual {
			ids = append(ids, e.ID)
		}
		return Result{
			Reply:    fmt.Sprintf("Ho eliminato tutti i %d eventi. Gli impegni derivati dalle abitudini restano al loro posto.", len(ids)),
			Mutation: &Mutation{RemoveIDs: ids},
			Pending:  ctx.Pending,
		}, true
	}

	term := stripTokens(norm, deleteStopWords)
	if term == "" {
		return Result{
			Reply:   "Dimmi quale evento eliminare, ad esempio: \"elimina riunione\".",
			Pending: ctx.Pending,
		}, true
	}

	var ids []string
	var titles []string
	for _, e := range manual {
		if strings.Contains(parser.Normalize(e.Title), term) {
			ids = append(ids, e.ID)
			titles = append(titles, e.Title)
		}
	}
	if len(ids) == 0 {
		return Result{
			Reply:   fmt.Sprintf("Non ho trovato nessun evento che corrisponda a \"%s\".", term),
			Pending: ctx.Pending,
		}, true
	}
	return Result{
		Reply:    fmt.Sprintf("Ho eliminato %d eventi: %s.", len(ids), strings.Join(titles, ", ")),
		Mutation: &Mutation{RemoveIDs: ids},
		Pending:  ctx.Pending,
	}, true
}

// dayQueryIntent reports the three freest or busiest days of the week.
func dayQueryIntent(norm, raw string, ctx Context) (Result, bool) {
	if !strings.Contains(norm, "giorni") {
		return Result{}, false
	}
	free := strings.Contains(norm, "liberi") || strings.Contains(norm, "libero") || strings.Contains(norm, "disponibil")
	busy := strings.Contains(norm, "occupat") || strings.Contains(norm, "pien")
	if !free && !busy {
		return Result{}, false
	}

	week := availability.AnalyzeWeek(ctx.Events, dateutil.Midnight(ctx.now()))
	ranked := week.Rank(free)

	var b strings.Builder
	if free {
		b.WriteString("I giorni più liberi della settimana:\n")
	} else {
		b.WriteString("I giorni più pieni della settimana:\n")
	}
	for _, day := range ranked[:3] {
		fmt.Fprintf(&b, "- %s %s: %d eventi, %s occupate\n",
			dateutil.WeekdayName(day.Weekday), displayDate(day.Date),
			len(day.Events), hoursLabel(day.CommittedMinutes))
	}
	return Result{Reply: strings.TrimRight(b.String(), "\n"), Pending: ctx.Pending}, true
}

// slotQueryIntent answers "quando posso inserire/programmare/mettere ...":
// it scans the week from the freest day and offers up to five slots long
// enough for the requested duration (default one hour).
func slotQueryIntent(norm, raw string, ctx Context) (Result, bool) {
	if !strings.Contains(norm, "quando") {
		return Result{}, false
	}
	if !strings.Contains(norm, "inserire") && !strings.Contains(norm, "programmare") && !strings.Contains(norm, "mettere") {
		return Result{}, false
	}

	minutes := 60
	if m := durationRx.FindStringSubmatchIndex(norm); m != nil {
		minutes = routineMinutes(norm, m)
	}

	workStart, workEnd := ctx.window()
	week := availability.AnalyzeWeek(ctx.Events, dateutil.Midnight(ctx.now()))

	const maxSlots = 5
	type daySlots struct {
		day   availability.DayStats
		slots []models.FreeSlot
	}
	var found []daySlots
	total := 0
	for _, day := range week.Rank(true) {
		if total >= maxSlots {
			break
		}
		var fitting []models.FreeSlot
		for _, s := range availability.FreeSlots(day.Events, workStart, workEnd) {
			if s.DurationMinutes >= minutes {
				fitting = append(fitting, s)
				total++
				if total >= maxSlots {
					break
				}
			}
		}
		if len(fitting) > 0 {
			found = append(found, daySlots{day: day, slots: fitting})
		}
	}

	if len(found) == 0 {
		return Result{
			Reply: fmt.Sprintf(
				"Non ho trovato spazi da %d minuti questa settimana. Puoi provare con una durata più corta, spostare qualche evento o riprovare la prossima settimana.",
				minutes),
			Pending: ctx.Pending,
		}, true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Ecco dove puoi inserire %d minuti:\n", minutes)
	for _, ds := range found {
		fmt.Fprintf(&b, "%s %s:\n", dateutil.WeekdayName(ds.day.Weekday), displayDate(ds.day.Date))
		for _, s := range ds.slots {
			fmt.Fprintf(&b, "  - %s-%s (%d minuti liberi)\n", s.Start, s.End, s.DurationMinutes)
		}
	}
	return Result{Reply: strings.TrimRight(b.String(), "\n"), Pending: ctx.Pending}, true
}

// weekSummaryIntent gives the weekly totals and a qualitative remark.
func weekSummaryIntent(norm, raw string, ctx Context) (Result, bool) {
	if !strings.Contains(norm, "analisi") && !strings.Contains(norm, "come va") &&
		!strings.Contains(norm, "settimana") && !strings.Contains(norm, "riepilogo") {
		return Result{}, false
	}

	week := availability.AnalyzeWeek(ctx.Events, dateutil.Midnight(ctx.now()))
	totalHours := float64(week.TotalMinutes()) / 60

	remark := "La settimana è equilibrata."
	if totalHours > 40 {
		remark = "La settimana è intensa: valuta di alleggerire qualche giornata."
	} else if totalHours < 20 {
		remark = "La settimana è leggera: c'è spazio per nuove attività."
	}

	reply := fmt.Sprintf(
		"Questa settimana hai %d eventi per un totale di %s impegnate, %d giorni completamente liberi e una media di %.1f eventi al giorno. %s",
		week.TotalEvents(), hoursLabel(week.TotalMinutes()), week.FreeDays(),
		float64(week.TotalEvents())/7, remark)
	return Result{Reply: reply, Pending: ctx.Pending}, true
}

var searchStopWords = map[string]bool{
	"cerca": true, "trova": true, "evento": true, "eventi": true,
	"il": true, "lo": true, "la": true, "gli": true, "i": true, "le": true, "l": true,
}

// searchIntent matches a term against every event title, habits included.
func searchIntent(norm, raw string, ctx Context) (Result, bool) {
	if !strings.Contains(norm, "cerca") && !strings.Contains(norm, "trova") {
		return Result{}, false
	}

	term := stripTokens(norm, searchStopWords)
	if term == "" {
		return Result{Reply: "Dimmi cosa cercare, ad esempio: \"cerca palestra\".", Pending: ctx.Pending}, true
	}

	const maxResults = 5
	var b strings.Builder
	count := 0
	for _, e := range ctx.Events {
		if !strings.Contains(parser.Normalize(e.Title), term) {
			continue
		}
		if count == 0 {
			b.WriteString("Ecco cosa ho trovato:\n")
		}
		fmt.Fprintf(&b, "- %s il %s", e.Title, displayDate(e.Date))
		if e.Timed() {
			fmt.Fprintf(&b, " %s-%s", e.Time, e.EndTime)
		}
		b.WriteString("\n")
		count++
		if count == maxResults {
			break
		}
	}
	if count == 0 {
		return Result{
			Reply:   fmt.Sprintf("Nessun evento trovato per \"%s\".", term),
			Pending: ctx.Pending,
		}, true
	}
	return Result{Reply: strings.TrimRight(b.String(), "\n"), Pending: ctx.Pending}, true
}

// stripTokens removes the given words from the message and returns what is
// left as a single trimmed term.
func stripTokens(norm string, stop map[string]bool) string {
	var kept []string
	for _, tok := range strings.Fields(norm) {
		if !stop[tok] {
			kept = append(kept, tok)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}
