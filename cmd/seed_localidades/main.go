// seed_localidades genera un script SQL para poblar las tablas de provincias
// y localidades a partir del listado de códigos postales del Correo Argentino
// (TXT delimitado por ';', codificado en ISO-8859-1).
//
// Uso: go run ./cmd/seed_localidades [ruta/codigos_postales.txt]
// Por defecto busca codigos_postales.txt en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/010_seed_localidades.sql
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type localidad struct {
	provincia string
	nombre    string
	cp        string
}

func main() {
	txtPath := "codigos_postales.txt"
	if len(os.Args) > 1 {
		txtPath = os.Args[1]
	}
	f, err := os.Open(txtPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir listado: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El listado oficial viene en ISO-8859-1 (tildes y eñes fuera de ASCII).
	sc := bufio.NewScanner(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))

	provincias := make(map[string]bool)
	vistos := make(map[string]bool)
	var localidades []localidad
	for sc.Scan() {
		linea := strings.TrimSpace(sc.Text())
		if linea == "" || strings.HasPrefix(linea, "#") {
			continue
		}
		// Formato: Provincia;Localidad;CPA
		campos := strings.Split(linea, ";")
		if len(campos) < 3 {
			continue
		}
		prov := strings.TrimSpace(campos[0])
		loc := strings.TrimSpace(campos[1])
		cp := strings.TrimSpace(campos[2])
		if prov == "" || loc == "" || cp == "" {
			continue
		}
		clave := prov + "|" + loc
		if vistos[clave] {
			continue
		}
		vistos[clave] = true
		provincias[prov] = true
		localidades = append(localidades, localidad{provincia: prov, nombre: loc, cp: cp})
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Leer listado: %v\n", err)
		os.Exit(1)
	}

	// Orden estable para que el script generado sea diffeable
	var nombresProv []string
	for p := range provincias {
		nombresProv = append(nombresProv, p)
	}
	sort.Strings(nombresProv)
	sort.Slice(localidades, func(i, j int) bool {
		if localidades[i].provincia != localidades[j].provincia {
			return localidades[i].provincia < localidades[j].provincia
		}
		return localidades[i].nombre < localidades[j].nombre
	})

	// Ruta del script de salida (relativa al módulo)
	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "010_seed_localidades.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Provincias y localidades de Argentina con código postal\n")
	out.WriteString("-- Generado desde el listado de códigos postales del Correo Argentino\n\n")

	out.WriteString("-- 1. Provincias\n")
	out.WriteString("INSERT INTO provincias (nombre) VALUES\n")
	for i, p := range nombresProv {
		nombre := escapeSQL(p)
		if i < len(nombresProv)-1 {
			fmt.Fprintf(out, "  ('%s'),\n", nombre)
		} else {
			fmt.Fprintf(out, "  ('%s')\n", nombre)
		}
	}
	out.WriteString("ON CONFLICT (nombre) DO NOTHING;\n\n")

	out.WriteString("-- 2. Localidades con subquery a la provincia\n")
	for _, loc := range localidades {
		nombre := escapeSQL(loc.nombre)
		fmt.Fprintf(out, "INSERT INTO localidades (provincia_id, nombre, codigo_postal)\n")
		fmt.Fprintf(out, "SELECT id, '%s', '%s' FROM provincias WHERE nombre = '%s'\n",
			nombre, escapeSQL(loc.cp), escapeSQL(loc.provincia))
		out.WriteString("ON CONFLICT (provincia_id, nombre) DO UPDATE SET codigo_postal = EXCLUDED.codigo_postal;\n")
	}

	fmt.Printf("Generado %s: %d provincias, %d localidades\n", outPath, len(nombresProv), len(localidades))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
