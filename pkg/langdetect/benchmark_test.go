package langdetect

import (
	"testing"
)

func BenchmarkDetectGo(b *testing.B) {
	code := []byte(`package main

import "fmt"

func main() {
	fmt.Println("Hello, World!")
}`)
	detector := New()
	b.ResetTimer()
	for range b.N {
		detector.Detect(code)
	}
}

func BenchmarkDetectJSX(b *testing.B) {
	code := []byte(`export default function Page() {
  return (
    <Layout>
      <Note kind="info" />
    </Layout>
  )
}`)
	detector := New()
	b.ResetTimer()
	for range b.N {
		detector.Detect(code)
	}
}

func BenchmarkDetectClassifier(b *testing.B) {
	code := []byte("puts 'hello'\nclass Foo; end")
	detector := New()
	b.ResetTimer()
	for range b.N {
		detector.Detect(code)
	}
}

func BenchmarkDetectEmpty(b *testing.B) {
	detector := New()
	b.ResetTimer()
	for range b.N {
		detector.Detect(nil)
	}
}
