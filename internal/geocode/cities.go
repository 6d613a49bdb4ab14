package geocode

// germanCities holds centroids of the larger German cities. English
// exonyms share the coordinates of the German name.
var germanCities = []city{
	{"Berlin", 52.5200, 13.4050},
	{"München", 48.1351, 11.5820},
	{"Munich", 48.1351, 11.5820},
	{"Hamburg", 53.5511, 9.9937},
	{"Köln", 50.9375, 6.9603},
	{"Cologne", 50.9375, 6.9603},
	{"Frankfurt", 50.1109, 8.6821},
	{"Stuttgart", 48.7758, 9.1829},
	{"Düsseldorf", 51.2277, 6.7735},
	{"Dortmund", 51.5136, 7.4653},
	{"Essen", 51.4556, 7.0116},
	{"Leipzig", 51.3397, 12.3731},
	{"Bremen", 53.0793, 8.8017},
	{"Dresden", 51.0504, 13.7373},
	{"Hannover", 52.3759, 9.7320},
	{"Nürnberg", 49.4521, 11.0767},
	{"Nuremberg", 49.4521, 11.0767},
	{"Duisburg", 51.4344, 6.7623},
	{"Bochum", 51.4818, 7.2162},
	{"Wuppertal", 51.2562, 7.1508},
	{"Bonn", 50.7374, 7.0982},
	{"Bielefeld", 52.0302, 8.5325},
	{"Mannheim", 49.4875, 8.4660},
	{"Karlsruhe", 49.0069, 8.4037},
	{"Münster", 51.9607, 7.6261},
	{"Augsburg", 48.3705, 10.8978},
	{"Wiesbaden", 50.0826, 8.2402},
	{"Gelsenkirchen", 51.5177, 7.0857},
	{"Mönchengladbach", 51.1805, 6.4428},
	{"Braunschweig", 52.2689, 10.5268},
	{"Chemnitz", 50.8278, 12.9214},
	{"Kiel", 54.3233, 10.1228},
	{"Aachen", 50.7753, 6.0839},
	{"Halle", 51.4969, 11.9689},
	{"Magdeburg", 52.1205, 11.6276},
	{"Freiburg", 47.9990, 7.8421},
	{"Krefeld", 51.3388, 6.5853},
	{"Lübeck", 53.8655, 10.6866},
	{"Mainz", 49.9929, 8.2473},
	{"Erfurt", 50.9787, 11.0328},
	{"Rostock", 54.0887, 12.1439},
	{"Kassel", 51.3127, 9.4797},
	{"Hagen", 51.3670, 7.4632},
	{"Potsdam", 52.3906, 13.0645},
	{"Saarbrücken", 49.2401, 6.9969},
	{"Hamm", 51.6806, 7.8200},
	{"Mülheim", 51.4267, 6.8833},
	{"Ludwigshafen", 49.4774, 8.4451},
	{"Leverkusen", 51.0458, 6.9856},
	{"Oldenburg", 53.1435, 8.2146},
	{"Osnabrück", 52.2799, 8.0472},
	{"Solingen", 51.1657, 7.0670},
	{"Heidelberg", 49.3988, 8.6724},
	{"Herne", 51.5386, 7.2047},
	{"Neuss", 51.1979, 6.6851},
	{"Darmstadt", 49.8728, 8.6512},
	{"Paderborn", 51.7189, 8.7575},
	{"Regensburg", 49.0134, 12.1016},
	{"Ingolstadt", 48.7665, 11.4257},
	{"Würzburg", 49.7913, 9.9534},
	{"Fürth", 49.4778, 10.9889},
	{"Wolfsburg", 52.4227, 10.7865},
	{"Offenbach", 50.0955, 8.7761},
	{"Ulm", 48.4011, 9.9876},
	{"Heilbronn", 49.1427, 9.2109},
	{"Pforzheim", 48.8914, 8.6940},
	{"Göttingen", 51.5412, 9.9158},
	{"Bottrop", 51.5216, 6.9289},
	{"Trier", 49.7596, 6.6441},
	{"Recklinghausen", 51.6142, 7.1906},
	{"Reutlingen", 48.4911, 9.2044},
	{"Bremerhaven", 53.5396, 8.5806},
	{"Koblenz", 50.3569, 7.5890},
	{"Bergisch Gladbach", 50.9920, 7.1397},
	{"Erlangen", 49.5897, 11.0049},
	{"Tübingen", 48.5216, 9.0576},
	{"Siegen", 50.8747, 8.0239},
	{"Hildesheim", 52.1561, 9.9511},
	{"Cottbus", 51.7606, 14.3340},
}
