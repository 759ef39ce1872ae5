package process

// journalAbbreviations maps full journal names, as emitted by the metadata
// APIs, to their canonical abbreviations. Heavily biased toward astronomy
// and machine learning venues; users extend the table via configuration.
var journalAbbreviations = map[string]string{
	"Astronomy \\& Astrophysics":                               "A\\&A",
	"Astronomy and Astrophysics":                               "A\\&A",
	"The Astronomical Journal":                                 "AJ",
	"The Astrophysical Journal":                                "ApJ",
	"The Astrophysical Journal Letters":                        "ApJL",
	"The Astrophysical Journal Supplement Series":              "ApJS",
	"Annual Review of Astronomy and Astrophysics":              "ARA\\&A",
	"Monthly Notices of the Royal Astronomical Society":        "MNRAS",
	"Publications of the Astronomical Society of the Pacific":  "PASP",
	"Publications of the Astronomical Society of Japan":        "PASJ",
	"Journal of Cosmology and Astroparticle Physics":           "JCAP",
	"Nature Astronomy":                                         "Nat. Astron.",
	"Physical Review A":                                        "Phys. Rev. A",
	"Physical Review B":                                        "Phys. Rev. B",
	"Physical Review D":                                        "Phys. Rev. D",
	"Physical Review E":                                        "Phys. Rev. E",
	"Physical Review Letters":                                  "Phys. Rev. Lett.",
	"Physical Review X":                                        "Phys. Rev. X",
	"Reviews of Modern Physics":                                "Rev. Mod. Phys.",
	"Journal of Machine Learning Research":                     "JMLR",
	"Journal of Open Source Software":                          "JOSS",
	"Transactions on Machine Learning Research":                "TMLR",
	"Proceedings of the National Academy of Sciences":          "PNAS",
	"Journal of the American Statistical Association":          "JASA",
	"Journal of the Royal Statistical Society: Series B":       "JRSS-B",
	"SIAM Journal on Scientific Computing":                     "SIAM J. Sci. Comput.",
	"SIAM Review":                                              "SIAM Rev.",
	"Journal of Computational Physics":                         "J. Comput. Phys.",
	"Journal of Chemical Physics":                              "J. Chem. Phys.",
	"The Journal of Chemical Physics":                          "J. Chem. Phys.",
	"Journal of Geophysical Research: Planets":                 "JGR Planets",
	"Icarus":                                                   "Icarus",
	"Experimental Astronomy":                                   "Exp. Astron.",
	"Astronomy and Computing":                                  "Astron. Comput.",
	"Astrophysics and Space Science":                           "Ap\\&SS",
	"Space Science Reviews":                                    "Space Sci. Rev.",
	"Annual Review of Earth and Planetary Sciences":            "Annu. Rev. Earth Planet. Sci.",
	"IEEE Transactions on Pattern Analysis and Machine Intelligence": "IEEE TPAMI",
	"IEEE Transactions on Neural Networks and Learning Systems":      "IEEE TNNLS",
	"Neural Computation":                                       "Neural Comput.",
	"Machine Learning":                                         "Mach. Learn.",
	"Bioinformatics":                                           "Bioinformatics",
	"Nucleic Acids Research":                                   "Nucleic Acids Res.",
}
