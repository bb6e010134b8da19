package population

import "github.com/eugenenazirov/apportionment/internal/apportion"

// census2013 holds the 2013 resident population estimates of the fifty states.
// The District of Columbia is excluded because it elects no voting members.
var census2013 = apportion.Distribution{
	{Name: "California", Population: 38332521},
	{Name: "Texas", Population: 26448193},
	{Name: "New York", Population: 19651127},
	{Name: "Florida", Population: 19552860},
	{Name: "Illinois", Population: 12882135},
	{Name: "Pennsylvania", Population: 12773801},
	{Name: "Ohio", Population: 11570808},
	{Name: "Georgia", Population: 9992167},
	{Name: "Michigan", Population: 9895622},
	{Name: "North Carolina", Population: 9848060},
	{Name: "New Jersey", Population: 8899339},
	{Name: "Virginia", Population: 8260405},
	{Name: "Washington", Population: 6971406},
	{Name: "Massachusetts", Population: 6692824},
	{Name: "Arizona", Population: 6626624},
	{Name: "Indiana", Population: 6570902},
	{Name: "Tennessee", Population: 6495978},
	{Name: "Missouri", Population: 6044171},
	{Name: "Maryland", Population: 5928814},
	{Name: "Wisconsin", Population: 5742713},
	{Name: "Minnesota", Population: 5420380},
	{Name: "Colorado", Population: 5268367},
	{Name: "Alabama", Population: 4833722},
	{Name: "South Carolina", Population: 4774839},
	{Name: "Louisiana", Population: 4625470},
	{Name: "Kentucky", Population: 4395295},
	{Name: "Oregon", Population: 3930065},
	{Name: "Oklahoma", Population: 3850568},
	{Name: "Connecticut", Population: 3596080},
	{Name: "Iowa", Population: 3090416},
	{Name: "Mississippi", Population: 2991207},
	{Name: "Arkansas", Population: 2959373},
	{Name: "Utah", Population: 2900872},
	{Name: "Kansas", Population: 2893957},
	{Name: "Nevada", Population: 2790136},
	{Name: "New Mexico", Population: 2085287},
	{Name: "Nebraska", Population: 1868516},
	{Name: "West Virginia", Population: 1854304},
	{Name: "Idaho", Population: 1612136},
	{Name: "Hawaii", Population: 1404054},
	{Name: "Maine", Population: 1328302},
	{Name: "New Hampshire", Population: 1323459},
	{Name: "Rhode Island", Population: 1051511},
	{Name: "Montana", Population: 1015165},
	{Name: "Delaware", Population: 925749},
	{Name: "South Dakota", Population: 844877},
	{Name: "Alaska", Population: 735132},
	{Name: "North Dakota", Population: 723393},
	{Name: "Vermont", Population: 626630},
	{Name: "Wyoming", Population: 582658},
}

// Census2013 returns a copy of the bundled 2013 population table.
func Census2013() apportion.Distribution {
	return census2013.Clone()
}

// Census2013Seats is the size of the House the table is usually apportioned to.
const Census2013Seats = 435
