// Package authz es el modelo de autorización: roles predefinidos (inmutables),
// cascada de permisos view → create → edit → delete y evaluación de acceso por módulo.
//
// Todo el paquete es lógica pura: no hace I/O ni guarda estado compartido. Las lecturas y
// escrituras de roles, módulos y permisos pertenecen a los repositorios; los llamadores
// resuelven el empleado y la fila de permisos y se los pasan explícitamente.
package authz
