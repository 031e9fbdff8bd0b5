package commentary

import (
	"fmt"
	"sync"

	"pitchside/internal/language"
)

// Event tags shared by the built-in profiles.
const (
	TagGoal         = "goal"
	TagAssist       = "assist"
	TagYellowCard   = "yellow_card"
	TagRedCard      = "red_card"
	TagSubstitution = "substitution"
	TagCorner       = "corner"
	TagFreeKick     = "free_kick"
	TagPenalty      = "penalty"
	TagOffside      = "offside"
	TagFoul         = "foul"
	TagSave         = "save"
	TagShot         = "shot"
	TagHeader       = "header"
	TagTackle       = "tackle"
)

const wordChars = `[\p{L}\p{N}_]`

var englishEvents = []EventRule{
	{TagGoal, `goal|scores?|scored|scoring|nets?|finds?\s+the\s+net|back\s+of\s+the\s+net`},
	{TagAssist, `assist|assists|assisted|sets?\s+up|crosses?|passes?`},
	{TagYellowCard, `yellow\s+card|booked|cautioned|warning`},
	{TagRedCard, `red\s+card|sent\s+off|dismissed|ejected`},
	{TagSubstitution, `substitut` + wordChars + `+|sub` + wordChars + `+|replaces?|comes?\s+on|off\s+for`},
	{TagCorner, `corner|corner\s+kick`},
	{TagFreeKick, `free\s+kick|direct\s+kick|indirect\s+kick`},
	{TagPenalty, `penalty|penalty\s+kick|from\s+the\s+spot`},
	{TagOffside, `offside|offside\s+trap`},
	{TagFoul, `foul|fouled|commits?\s+a\s+foul`},
	{TagSave, `save|saves?|saved|blocks?|stopped`},
	{TagShot, `shot|shoots?|shooting|attempt`},
	{TagHeader, `header|heads?|heading`},
	{TagTackle, `tackle|tackles?|tackled`},
}

var spanishEvents = []EventRule{
	{TagGoal, `gol|goles|marca|anota|anotó|anotando|convierte|convertir`},
	{TagAssist, `asistencia|asiste|pase|habilitación|habilita|centro|centrar`},
	{TagYellowCard, `tarjeta\s+amarilla|amarilla|amonestado|amonestación|advertencia`},
	{TagRedCard, `tarjeta\s+roja|roja|expulsado|expulsión|echado`},
	{TagSubstitution, `sustitución|cambio|sustituye|reemplaza|entra|sale|ingresa`},
	{TagCorner, `córner|corner|saque\s+de\s+esquina|tiro\s+de\s+esquina`},
	{TagFreeKick, `tiro\s+libre|libre|falta|directo|indirecto`},
	{TagPenalty, `penalty|penalti|penal|desde\s+los\s+once\s+metros`},
	{TagOffside, `fuera\s+de\s+juego|offside|posición\s+adelantada`},
	{TagFoul, `falta|infracción|comete\s+falta|golpe`},
	{TagSave, `atajada|parada|ataja|para|detiene|bloquea`},
	{TagShot, `disparo|tiro|remate|intento|lanza|patea`},
	{TagHeader, `cabezazo|cabecea|de\s+cabeza|remate\s+de\s+cabeza`},
	{TagTackle, `entrada|barrida|anticipo|recupera|quita`},
}

var englishPlayers = []string{
	"Messi", "Ronaldo", "Neymar", "Mbappe", "Benzema", "Modric", "Ramos",
	"Pique", "Iniesta", "Xavi", "Busquets", "Griezmann", "Haaland",
	"Lewandowski", "Salah", "Kane", "Sterling", "De Bruyne", "Mahrez",
	"Giroud", "Casemiro", "Kroos", "Bale", "Suarez", "Alba", "Ter Stegen",
}

var spanishPlayers = []string{
	"Messi", "Ronaldo", "Neymar", "Mbappé", "Benzema", "Modrić", "Ramos",
	"Piqué", "Iniesta", "Xavi", "Busquets", "Griezmann", "Haaland",
	"Lewandowski", "Salah", "Kane", "Sterling", "De Bruyne", "Mahrez",
	"Giroud", "Casemiro", "Kroos", "Bale", "Suárez", "Alba", "Ter Stegen",
	"Vinicius", "Pedri", "Gavi", "Ansu Fati", "Rodrygo", "Valverde",
	"Camavinga", "Tchouaméni", "Bellingham", "Luka Modrić", "Toni Kroos",
}

var englishTeams = []string{
	"Barcelona", "Real Madrid", "PSG", "Manchester United", "Manchester City",
	"Liverpool", "Chelsea", "Arsenal", "Tottenham", "Bayern Munich",
	"Borussia Dortmund", "Juventus", "AC Milan", "Inter Milan", "Atletico Madrid",
}

var spanishTeams = []string{
	"Barcelona", "Real Madrid", "Atlético Madrid", "Sevilla", "Valencia",
	"Athletic Bilbao", "Real Sociedad", "Villarreal", "Betis", "Getafe",
	"Boca Juniors", "River Plate", "Independiente", "Racing", "San Lorenzo",
	"América", "Chivas", "Cruz Azul", "Pumas", "Tigres",
}

type definition struct {
	events  []EventRule
	players []string
	teams   []string
}

var definitions = map[string]definition{
	"en": {englishEvents, englishPlayers, englishTeams},
	"es": {spanishEvents, spanishPlayers, spanishTeams},
}

var (
	builtinOnce sync.Once
	builtin     map[string]*Profile
)

func loadBuiltin() {
	builtin = make(map[string]*Profile, len(definitions))
	for code, def := range definitions {
		p, err := NewProfile(code, def.events, def.players, def.teams)
		if err != nil {
			panic(fmt.Sprintf("built-in profile %s: %v", code, err))
		}
		builtin[code] = p
	}
}

// ProfileFor returns the cached built-in profile for a language code. Codes
// are resolved through the language package, so "es-MX" and "spanish" select
// the Spanish profile.
func ProfileFor(code string) (*Profile, error) {
	builtinOnce.Do(loadBuiltin)
	iso := language.ToISO2(code)
	if p, ok := builtin[iso]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
}

// Languages lists the codes with a built-in profile.
func Languages() []string {
	out := make([]string, 0, len(definitions))
	for _, code := range language.Supported() {
		if _, ok := definitions[code]; ok {
			out = append(out, code)
		}
	}
	return out
}
