// Diagnóstico rápido del certificado AFIP (.p12) cuando WSAA rechaza el login.
// Uso: go run debug_cert.go <ruta.p12> <password>
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/pkcs12"
)

func main() {
	certPath := os.Getenv("AFIP_CERT_PATH")
	certPass := os.Getenv("AFIP_CERT_PASSWORD")
	if len(os.Args) > 2 {
		certPath = os.Args[1]
		certPass = os.Args[2]
	}
	if certPath == "" {
		fmt.Println("Uso: go run debug_cert.go <ruta.p12> <password> (o AFIP_CERT_PATH/AFIP_CERT_PASSWORD)")
		return
	}

	fmt.Println("🔍 DIAGNÓSTICO DE CERTIFICADO AFIP")
	fmt.Println("----------------------------------")
	fmt.Printf("📂 Intentando leer: %s\n", certPath)

	p12Data, err := os.ReadFile(certPath)
	if err != nil {
		fmt.Println("\n❌ ERROR DE ARCHIVO:")
		fmt.Printf("   Go no puede encontrar o abrir el archivo.\n")
		fmt.Printf("   Detalle técnico: %v\n", err)
		return
	}
	fmt.Printf("✅ Archivo encontrado. Tamaño: %d bytes\n", len(p12Data))

	priv, cert, err := pkcs12.Decode(p12Data, certPass)
	if err != nil {
		fmt.Println("\n❌ ERROR DE DECODIFICACIÓN:")
		fmt.Printf("   La contraseña no coincide o el .p12 está corrupto.\n")
		fmt.Printf("   Detalle técnico: %v\n", err)
		return
	}

	fmt.Println("✅ Certificado decodificado correctamente")
	fmt.Printf("   Sujeto:  %s\n", cert.Subject)
	fmt.Printf("   Emisor:  %s\n", cert.Issuer)
	fmt.Printf("   Vigente: %s → %s\n", cert.NotBefore.Format("2006-01-02"), cert.NotAfter.Format("2006-01-02"))
	if priv != nil {
		fmt.Println("✅ Llave privada presente: listo para firmar el TRA de WSAA")
	}
}
