package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

const (
	brandsCSV = `Rank,Restaurant,Content,Sales,YOY_Sales,Units,YOY_Units,Headquarters,Segment_Category
1,McDonald's,,40412,4.9%,13846,-0.5%,,Quick Service & Burger
2,Texas Roadhouse,,3461,12.1%,611,5.0%,,Steak
3,Chick-fil-A,,11320,13.0%,2470,5.0%,,Chicken
4,Pizza Hut,,5380,-3.0%,6561,-0.4%,,Pizza
5,Red Lobster,,2456,-1.8%,669,0.0%,,Seafood
`
	independentsCSV = `Rank,Restaurant,Sales,Average Check,City,State,Meals Served
1,Carmine's (Times Square),39080335,40,New York,N.Y.,469803
2,The Boathouse Orlando,35218364,43,Orlando,Fla.,820819
3,Old Ebbitt Grill,29104017,33,Washington,D.C.,892830
4,LAVO Italian Restaurant & Nightclub,26916180,90,New York,N.Y.,198500
5,Bryant Park Grill & Cafe,26900000,45,New York,N.Y.,536200
6,Gibsons Bar & Steakhouse,25100000,70,Chicago,Ill.,358500
`
	populationCSV = `rank,state,state_code,2020_census,percent_of_total
1,California,CA,39538223,0.1191
2,Texas,TX,29145505,0.0874
3,Florida,FL,21538187,0.0647
4,New York,NY,20201249,0.0607
5,Illinois,IL,12812508,0.0383
`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeSources lays down the three fixture files and returns their paths.
func writeSources(t *testing.T) Sources {
	t.Helper()
	dir := t.TempDir()
	return Sources{
		Brands:       writeFile(t, dir, "Top250.csv", brandsCSV),
		Independents: writeFile(t, dir, "Independence100.csv", independentsCSV),
		Population:   writeFile(t, dir, "us_pop_by_state_2020.csv", populationCSV),
	}
}
