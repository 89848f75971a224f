package bibidx

// CanonBook is a book of the 66-book canon the index is built for.
type CanonBook struct {
	Name     string
	Chapters int
}

// Canon lists the books in index order with their chapter counts. The chapter
// counts sum to ExpectedChapterCount.
var Canon = [ExpectedBookCount]CanonBook{
	{"Genesis", 50},
	{"Exodo", 40},
	{"Levitico", 27},
	{"Numeros", 36},
	{"Deuteronomio", 34},
	{"Josue", 24},
	{"Juizes", 21},
	{"Rute", 4},
	{"1 Samuel", 31},
	{"2 Samuel", 24},
	{"1 Reis", 22},
	{"2 Reis", 25},
	{"1 Cronicas", 29},
	{"2 Cronicas", 36},
	{"Esdras", 10},
	{"Neemias", 13},
	{"Ester", 10},
	{"Jo", 42},
	{"Salmos", 150},
	{"Proverbios", 31},
	{"Eclesiastes", 12},
	{"Cantares", 8},
	{"Isaias", 66},
	{"Jeremias", 52},
	{"Lamentacoes", 5},
	{"Ezequiel", 48},
	{"Daniel", 12},
	{"Oseias", 14},
	{"Joel", 3},
	{"Amos", 9},
	{"Obadias", 1},
	{"Jonas", 4},
	{"Miqueias", 7},
	{"Naum", 3},
	{"Habacuque", 3},
	{"Sofonias", 3},
	{"Ageu", 2},
	{"Zacarias", 14},
	{"Malaquias", 4},
	{"Mateus", 28},
	{"Marcos", 16},
	{"Lucas", 24},
	{"Joao", 21},
	{"Atos", 28},
	{"Romanos", 16},
	{"1 Corintios", 16},
	{"2 Corintios", 13},
	{"Galatas", 6},
	{"Efesios", 6},
	{"Filipenses", 4},
	{"Colossenses", 4},
	{"1 Tessalonicenses", 5},
	{"2 Tessalonicenses", 3},
	{"1 Timoteo", 6},
	{"2 Timoteo", 4},
	{"Tito", 3},
	{"Filemom", 1},
	{"Hebreus", 13},
	{"Tiago", 5},
	{"1 Pedro", 5},
	{"2 Pedro", 3},
	{"1 Joao", 5},
	{"2 Joao", 1},
	{"3 Joao", 1},
	{"Judas", 1},
	{"Apocalipse", 22},
}

// BookName returns the display name of book i, or "" when out of range.
func BookName(i int) string {
	if i < 0 || i >= len(Canon) {
		return ""
	}
	return Canon[i].Name
}
